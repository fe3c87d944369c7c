//go:build linux
// +build linux

package capnslog

import (
	"github.com/coreos/go-systemd/v22/journal"
)

// JournaldFormatter writes log entries to the local systemd-journald
// socket instead of an io.Writer, for use when a binary built on this
// repository runs as a systemd unit. It maps capnslog's seven levels onto
// journald's syslog priorities; anything steeper than DEBUG collapses to
// journal.PriDebug since journald has no TRACE-equivalent priority.
type JournaldFormatter struct{}

func NewJournaldFormatter() *JournaldFormatter {
	return &JournaldFormatter{}
}

func (j *JournaldFormatter) Format(pkg string, level LogLevel, _ int, entries ...LogEntry) {
	if !journal.Enabled() {
		return
	}
	vars := map[string]string{"PACKAGE": pkg}
	for _, e := range entries {
		journal.Send(e.LogString(), journaldPriority(level), vars)
	}
}

func journaldPriority(l LogLevel) journal.Priority {
	switch l {
	case CRITICAL:
		return journal.PriCrit
	case ERROR:
		return journal.PriErr
	case WARNING:
		return journal.PriWarning
	case NOTICE:
		return journal.PriNotice
	case INFO:
		return journal.PriInfo
	default: // DEBUG, TRACE
		return journal.PriDebug
	}
}
