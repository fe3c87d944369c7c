package httputil

import (
	"net/http"

	"github.com/coreos/inflate/capnslog"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/inflate", "httputil")

// LoggingMiddleware logs one line per request before handing off to Next.
type LoggingMiddleware struct {
	Next http.Handler
}

func (l *LoggingMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	plog.Infof("HTTP %s %v", r.Method, r.URL)
	l.Next.ServeHTTP(w, r)
}
