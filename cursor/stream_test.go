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

package cursor

import "testing"

// storedBlock builds the raw bytes of a single one-block stored (BTYPE=00)
// DEFLATE stream, the simplest fixture that doesn't need a Huffman table.
func storedBlock(payload []byte) []byte {
	n := len(payload)
	out := []byte{
		1, // BFINAL=1, BTYPE=00, rest of byte zero padding
		byte(n), byte(n >> 8),
		byte(^uint16(n)), byte(^uint16(n) >> 8),
	}
	return append(out, payload...)
}

func TestStreamDecodesStoredBlock(t *testing.T) {
	payload := []byte("the cursor package drives inflate.Decompressor")
	raw := storedBlock(payload)

	var s Stream
	if st := s.Init(15); st != OK {
		t.Fatalf("Init = %v", st)
	}
	defer s.End()

	s.NextIn = raw
	s.AvailIn = uint32(len(raw))

	var got []byte
	for {
		out := make([]byte, 7) // deliberately small to force several Step calls
		s.NextOut = out
		s.AvailOut = uint32(len(out))
		st := s.Step(FlushFinish)
		got = append(got, out[:len(out)-int(s.AvailOut)]...)
		if st == StreamEnd {
			break
		}
		if st != OK {
			t.Fatalf("Step = %v", st)
		}
	}
	if string(got) != string(payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
	if s.TotalOut != uint64(len(payload)) {
		t.Errorf("TotalOut = %d, want %d", s.TotalOut, len(payload))
	}
}

func TestStreamRejectsBadWindowBits(t *testing.T) {
	var s Stream
	if st := s.Init(31); st != StreamError {
		t.Errorf("Init(31) = %v, want StreamError", st)
	}
}

func TestStreamFlushFinishReportsBufErrorOnTruncation(t *testing.T) {
	raw := storedBlock([]byte("hello"))
	truncated := raw[:len(raw)-2] // cut off the last two payload bytes

	var s Stream
	s.Init(15)
	defer s.End()
	s.NextIn = truncated
	s.AvailIn = uint32(len(truncated))
	s.NextOut = make([]byte, 16)
	s.AvailOut = 16

	st := s.Step(FlushFinish)
	if st != BufError {
		t.Errorf("Step(FlushFinish) on truncated input = %v, want BufError", st)
	}
}

func TestStreamPoisonsOnDataError(t *testing.T) {
	raw := []byte{0x07} // BFINAL=1, BTYPE=11 (reserved)

	var s Stream
	s.Init(15)
	defer s.End()
	s.NextIn = raw
	s.AvailIn = uint32(len(raw))
	s.NextOut = make([]byte, 4)
	s.AvailOut = 4

	if st := s.Step(FlushNone); st != DataError {
		t.Fatalf("Step = %v, want DataError", st)
	}
	if st := s.Step(FlushNone); st != DataError {
		t.Errorf("Step on poisoned stream = %v, want DataError again", st)
	}
}

func TestStatusString(t *testing.T) {
	if OK.String() != "OK" {
		t.Errorf("OK.String() = %q", OK.String())
	}
	if DataError.String() != "DATA_ERROR" {
		t.Errorf("DataError.String() = %q", DataError.String())
	}
}
