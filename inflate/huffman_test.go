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

package inflate

import "testing"

func TestHuffmanInitRejectsOverSubscribed(t *testing.T) {
	// Three symbols of length 1 can't coexist: only two 1-bit codes exist.
	var h huffmanDecoder
	if h.init([]int{1, 1, 1}) {
		t.Fatal("init accepted an over-subscribed code")
	}
}

func TestHuffmanInitAcceptsIncomplete(t *testing.T) {
	var h huffmanDecoder
	if !h.init([]int{1, 0, 0}) {
		t.Fatal("init rejected a valid (if incomplete) code")
	}
}

func TestHuffmanInitRejectsTooLong(t *testing.T) {
	var h huffmanDecoder
	if h.init([]int{16}) {
		t.Fatal("init accepted a length-16 code (max is 15)")
	}
}

func TestHuffmanSymRoundTrip(t *testing.T) {
	// A short alphabet: symbol 0 len1, symbol1 len2, symbol2 len2.
	lengths := []int{1, 2, 2}
	var h huffmanDecoder
	if !h.init(lengths) {
		t.Fatal("init failed on a valid short alphabet")
	}
	codes := canonicalCodes(lengths)

	for sym, length := range lengths {
		var w bitWriter
		w.writeHuffman(codes[sym], length)
		// Pad extra bytes so a short final code length still has enough
		// bits buffered for sym to resolve.
		w.writeBits(0, 16)
		in := cursorIn{buf: w.bytesFinal()}
		var br bitReader
		got, res := br.sym(&in, &h)
		if res != symOK {
			t.Fatalf("symbol %d: sym() = %v, want symOK", sym, res)
		}
		if got != sym {
			t.Errorf("symbol %d: decoded %d", sym, got)
		}
	}
}

func TestHuffmanSymNeedsInputOnStarvedLongCode(t *testing.T) {
	lengths := []int{1, 2, 2}
	var h huffmanDecoder
	h.init(lengths)
	codes := canonicalCodes(lengths)

	var w bitWriter
	w.writeHuffman(codes[1], 2)
	full := w.bytesFinal()

	// Feed zero bytes: nothing buffered yet.
	in := cursorIn{buf: nil}
	var br bitReader
	if _, res := br.sym(&in, &h); res != symNeedInput {
		t.Fatalf("sym() on empty input = %v, want symNeedInput", res)
	}
	// Now supply the real bytes and resolve with the same bitReader state.
	in2 := cursorIn{buf: full}
	got, res := br.sym(&in2, &h)
	if res != symOK || got != 1 {
		t.Fatalf("sym() after refill = %d,%v want 1,symOK", got, res)
	}
}

func TestHuffmanChunkOverflowLongCode(t *testing.T) {
	// Force a code longer than huffmanChunkBits (9) to exercise the link
	// table path: 10 symbols needs at least one length-10 code in a
	// minimal canonical tree shaped like this.
	lengths := make([]int, 11)
	for i := range lengths[:10] {
		lengths[i] = 4 + i/2
	}
	lengths[10] = 10
	// Not all arbitrary length sets are valid canonical codes; adjust
	// until Kraft's equality holds exactly via a couple of short codes.
	lengths = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10}
	var h huffmanDecoder
	if !h.init(lengths) {
		t.Fatal("init rejected a valid over-9-bit code set")
	}
	codes := canonicalCodes(lengths)
	for sym, length := range lengths {
		var w bitWriter
		w.writeHuffman(codes[sym], length)
		w.writeBits(0, 16)
		in := cursorIn{buf: w.bytesFinal()}
		var br bitReader
		got, res := br.sym(&in, &h)
		if res != symOK || got != sym {
			t.Errorf("symbol %d (len %d): got %d,%v", sym, length, got, res)
		}
	}
}

func TestReverseByteTable(t *testing.T) {
	cases := map[byte]byte{
		0x00:        0x00,
		0xff:        0xff,
		0x01:        0x80,
		0x80:        0x01,
		0b1011_0010: 0b0100_1101,
	}
	for in, want := range cases {
		if got := reverseByte[in]; got != want {
			t.Errorf("reverseByte[%#08b] = %#08b, want %#08b", in, got, want)
		}
	}
}
