// Copyright 2016 CoreOS, Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cursor is a thin zlib-shaped façade over package inflate: a
// Stream carries the caller's input and output buffers plus running
// totals, the way z_stream does, so a caller used to inflateInit2 /
// inflate / inflateEnd can drive this decoder the same way.
package cursor

import (
	"github.com/coreos/inflate/capnslog"
	"github.com/coreos/inflate/inflate"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/inflate", "cursor")

// Status mirrors zlib's handful of return codes closely enough that a
// caller ported from zlib recognizes them on sight.
type Status int

const (
	OK Status = 0

	StreamEnd Status = 1

	Errno        Status = -1
	StreamError  Status = -2
	DataError    Status = -3
	MemError     Status = -4
	BufError     Status = -5
	VersionError Status = -6
)

func (s Status) String() string {
	switch s {
	case OK:
		return "OK"
	case StreamEnd:
		return "STREAM_END"
	case Errno:
		return "ERRNO"
	case StreamError:
		return "STREAM_ERROR"
	case DataError:
		return "DATA_ERROR"
	case MemError:
		return "MEM_ERROR"
	case BufError:
		return "BUF_ERROR"
	case VersionError:
		return "VERSION_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Flush is the advisory hint a caller passes to Step, named after zlib's
// int flush parameter but narrowed to the two values spec.md section 4.8
// actually gives meaning to: whether more input may arrive later.
type Flush int

const (
	// FlushNone means the caller may supply more input in a later Step
	// call even after this one returns BufError for want of input.
	FlushNone Flush = iota
	// FlushFinish tells Step this is the last input the stream will ever
	// see; if the stream has not reached its natural end once NextIn is
	// exhausted, Step reports BufError rather than waiting for more.
	FlushFinish
)

// Stream is the caller-facing cursor pair plus the opaque decoder state,
// styled directly after z_stream: the caller sets NextIn/AvailIn and
// NextOut/AvailOut before every Step call and reads them back afterward to
// see how much of each was used.
type Stream struct {
	NextIn   []byte
	AvailIn  uint32
	NextOut  []byte
	AvailOut uint32

	TotalIn  uint64
	TotalOut uint64

	state *inflate.Decompressor
	done  bool // Step has returned StreamEnd or a terminal error once
}

// Init allocates the decoder state for a window of 2^abs(windowBits)
// bytes, the same convention inflate.New uses (spec.md section 4.8).
func (s *Stream) Init(windowBits int) Status {
	if s == nil {
		return Errno
	}
	d, err := inflate.New(windowBits)
	if err != nil {
		if _, ok := err.(inflate.InternalError); ok {
			return StreamError
		}
		return Errno
	}
	s.state = d
	s.done = false
	s.TotalIn, s.TotalOut = 0, 0
	plog.Debugf("stream initialized with window bits %d", windowBits)
	return OK
}

// Step decodes from NextIn into NextOut, consuming a prefix of each sized
// by AvailIn/AvailOut and updating both slices and counters in place so a
// caller can loop "refill NextIn, call Step" without bookkeeping of its
// own. It implements the progress rule of spec.md section 7: if a call
// makes no forward progress of any kind and the stream is not finished,
// BufError is returned instead of an infinite OK/BufError loop.
func (s *Stream) Step(flush Flush) Status {
	if s == nil {
		return Errno
	}
	if s.state == nil {
		return StreamError
	}
	if s.done {
		if s.state.Poisoned() {
			return DataError
		}
		return StreamEnd
	}

	in := s.NextIn[:s.AvailIn]
	out := s.NextOut[:s.AvailOut]

	consumed, produced, progressed, res := s.state.Run(in, out)

	s.NextIn = s.NextIn[consumed:]
	s.AvailIn -= uint32(consumed)
	s.NextOut = s.NextOut[produced:]
	s.AvailOut -= uint32(produced)
	s.TotalIn = s.state.TotalIn()
	s.TotalOut = s.state.TotalOut()

	switch res {
	case inflate.RunStreamEnd:
		s.done = true
		plog.Debugf("stream end at %d bytes in, %d out", s.TotalIn, s.TotalOut)
		return StreamEnd
	case inflate.RunDataError:
		s.done = true
		plog.Errorf("%v", s.state.Err())
		return DataError
	}

	// RunNeedMore: out of input, out of output, or both.
	if flush == FlushFinish && s.AvailIn == 0 {
		// No more input will ever come and the stream hasn't ended: the
		// encoder's stream is truncated.
		return BufError
	}
	if !progressed {
		return BufError
	}
	return OK
}

// End releases nothing (the decoder holds no external resources) but
// matches zlib's inflateEnd call for symmetry and to catch use-after-End
// mistakes the way a real teardown would.
func (s *Stream) End() Status {
	if s == nil {
		return Errno
	}
	s.state = nil
	return OK
}
