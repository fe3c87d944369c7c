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

// Command goinflate is a small file-I/O driver for package cursor: it
// reads raw DEFLATE streams from disk and writes the decompressed bytes
// back out, one goroutine per input file, using caller-owned buffers the
// way a real cursor.Stream consumer must.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"golang.org/x/crypto/blake2b"

	"github.com/coreos/inflate/capnslog"
	"github.com/coreos/inflate/cursor"
	"github.com/coreos/inflate/flagutil"
	"github.com/coreos/inflate/httputil"
	"github.com/coreos/inflate/stop"
	"github.com/coreos/inflate/yamlutil"
)

var plog = capnslog.NewPackageLogger("github.com/coreos/inflate", "goinflate")

var (
	windowBits = flag.Int("window-bits", 15, "log2 of the decode window size, 8-15")
	bufSize    = flag.Int("buf-size", 32*1024, "size in bytes of the output buffer used per decode")
	config     = flag.String("config", "", "path to a YAML file of flag defaults")
	listen     flagutil.IPv4Flag
	serve      = flag.Bool("serve", false, "after decoding the arguments, serve an HTTP status page on -listen")
	journald   = flag.Bool("journald", false, "log through systemd-journald instead of stderr, for running as a unit")
)

func init() {
	flag.Var(&listen, "listen", "IPv4 address to bind -serve to")
}

func main() {
	flag.Parse()

	if *journald {
		capnslog.SetFormatter(capnslog.NewJournaldFormatter())
	} else {
		capnslog.SetFormatter(capnslog.NewStringFormatter(os.Stderr))
	}

	if *config != "" {
		raw, err := ioutil.ReadFile(*config)
		if err != nil {
			plog.Fatalf("reading config: %v", err)
		}
		if err := yamlutil.SetFlagsFromYaml(flag.CommandLine, raw); err != nil {
			plog.Fatalf("applying config: %v", err)
		}
	}

	paths := flag.Args()
	if len(paths) == 0 {
		plog.Error(capnslog.BaseLogEntry("usage: goinflate [flags] file [file...]"))
		os.Exit(2)
	}

	group := stop.NewGroup()
	results := make(chan error, len(paths))

	for _, p := range paths {
		path := p
		done := make(chan struct{})
		group.AddFunc(func() <-chan struct{} { return done })
		go func() {
			defer close(done)
			results <- decodeFile(path)
		}()
	}

	var failed bool
	for range paths {
		if err := <-results; err != nil {
			plog.Errorf("%v", err)
			failed = true
		}
	}
	<-group.Stop()

	if *serve {
		serveStatus()
	}

	if failed {
		os.Exit(1)
	}
}

// decodeFile drives one cursor.Stream end to end, feeding it the whole
// input file at once but pulling output through a fixed-size buffer
// repeatedly, exercising the arbitrary-buffer-size property spec.md
// section 8 calls out.
func decodeFile(path string) error {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}

	var s cursor.Stream
	if st := s.Init(*windowBits); st != cursor.OK {
		return fmt.Errorf("%s: init: %v", path, st)
	}
	defer s.End()

	s.NextIn = raw
	s.AvailIn = uint32(len(raw))

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return fmt.Errorf("%s: %v", path, err)
	}

	out := make([]byte, *bufSize)
	for {
		s.NextOut = out
		s.AvailOut = uint32(len(out))

		st := s.Step(cursor.FlushFinish)
		hasher.Write(out[:len(out)-int(s.AvailOut)])

		switch st {
		case cursor.StreamEnd:
			plog.Infof("%s: %d bytes -> %d bytes, blake2b %x", path, s.TotalIn, s.TotalOut, hasher.Sum(nil))
			return nil
		case cursor.OK:
			continue
		default:
			return fmt.Errorf("%s: decode: %v", path, st)
		}
	}
}

func serveStatus() {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	wrapped := &httputil.LoggingMiddleware{Next: mux}

	addr := fmt.Sprintf("%s:0", listen.IP())
	if listen.IP() == nil {
		addr = "127.0.0.1:0"
	}
	plog.Infof("serving status on %s", addr)
	if err := http.ListenAndServe(addr, wrapped); err != nil {
		plog.Errorf("serve: %v", err)
	}
}
