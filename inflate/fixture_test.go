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

// Package inflate has no encoder (by design, spec scope), so these tests
// build raw DEFLATE bitstreams by hand, the same way
// original_source/test/verify_deflate.c built its fixtures: bit by bit,
// independent of the decoder under test.

// bitWriter accumulates a LSB-first packed bitstream, RFC 1951 3.1.1.
type bitWriter struct {
	bytes []byte
	cur   uint32
	nbits uint
}

// writeBits appends the low n bits of v to the stream in order from bit 0
// upward (the convention every fixed-width DEFLATE field uses).
func (w *bitWriter) writeBits(v uint32, n uint) {
	w.cur |= (v & (1<<n - 1)) << w.nbits
	w.nbits += n
	for w.nbits >= 8 {
		w.bytes = append(w.bytes, byte(w.cur))
		w.cur >>= 8
		w.nbits -= 8
	}
}

// writeHuffman appends a canonical Huffman code of the given bit length,
// packed MSB-first as RFC 1951 3.2.1 specifies ("the most significant bit
// of the code... first"), which inverts to an LSB-first stream write of
// the bit-reversed value.
func (w *bitWriter) writeHuffman(code uint32, length int) {
	var rev uint32
	for i := 0; i < length; i++ {
		rev = rev<<1 | (code & 1)
		code >>= 1
	}
	w.writeBits(rev, uint(length))
}

func (w *bitWriter) alignByte() {
	if w.nbits > 0 {
		w.bytes = append(w.bytes, byte(w.cur))
		w.cur, w.nbits = 0, 0
	}
}

func (w *bitWriter) writeByte(b byte) {
	w.alignByte()
	w.bytes = append(w.bytes, b)
}

func (w *bitWriter) bytesFinal() []byte {
	w.alignByte()
	return w.bytes
}

// canonicalCodes computes RFC 1951 3.2.2's canonical code for every
// non-zero length in lengths, independently of huffmanDecoder.init, so
// test fixtures aren't circular with the code under test.
func canonicalCodes(lengths []int) []uint32 {
	var blCount [maxCodeLen]int
	maxLen := 0
	for _, l := range lengths {
		blCount[l]++
		if l > maxLen {
			maxLen = l
		}
	}
	codes := make([]uint32, len(lengths))
	code := 0
	var nextCode [maxCodeLen]int
	blCount[0] = 0
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		codes[sym] = uint32(nextCode[l])
		nextCode[l]++
	}
	return codes
}

func writeFixedLiteral(w *bitWriter, sym int) {
	codes := canonicalCodes(fixedLiteralLengths[:])
	w.writeHuffman(codes[sym], fixedLiteralLengths[sym])
}

func writeFixedDist(w *bitWriter, sym int) {
	codes := canonicalCodes(fixedDistLengths[:])
	w.writeHuffman(codes[sym], fixedDistLengths[sym])
}

// lengthSymbolFor returns the length code (257-285) and extra-bits value
// encoding length, the inverse of lengthBase/lengthExtra.
func lengthSymbolFor(length int) (sym int, extra uint32, nb uint) {
	for i := len(lengthBase) - 1; i >= 0; i-- {
		if length >= lengthBase[i] {
			return 257 + i, uint32(length - lengthBase[i]), lengthExtra[i]
		}
	}
	panic("length out of range")
}

func distSymbolFor(dist int) (sym int, extra uint32, nb uint) {
	for i := len(distBase) - 1; i >= 0; i-- {
		if dist >= distBase[i] {
			return i, uint32(dist - distBase[i]), distExtra[i]
		}
	}
	panic("distance out of range")
}

func writeFixedMatch(w *bitWriter, length, dist int) {
	lsym, lextra, lnb := lengthSymbolFor(length)
	writeFixedLiteral(w, lsym)
	if lnb > 0 {
		w.writeBits(lextra, lnb)
	}
	dsym, dextra, dnb := distSymbolFor(dist)
	writeFixedDist(w, dsym)
	if dnb > 0 {
		w.writeBits(dextra, dnb)
	}
}

// runAll feeds in through Run in arbitrarily small chunks (chunkIn bytes of
// input, chunkOut bytes of output space per call) to exercise spec.md
// section 8's "any chunking of input and output must produce the same
// result as one big call" property, and returns the fully decoded output.
func runAll(t interface {
	Fatalf(string, ...interface{})
}, d *Decompressor, in []byte, chunkIn, chunkOut int) []byte {
	var out []byte
	inPos := 0
	for {
		end := inPos + chunkIn
		if end > len(in) || chunkIn <= 0 {
			end = len(in)
		}
		buf := make([]byte, chunkOut)
		consumed, produced, _, res := d.Run(in[inPos:end], buf)
		inPos += consumed
		out = append(out, buf[:produced]...)
		switch res {
		case RunStreamEnd:
			return out
		case RunDataError:
			t.Fatalf("unexpected data error: %v", d.Err())
			return out
		case RunNeedMore:
			if consumed == 0 && produced == 0 && inPos >= len(in) {
				t.Fatalf("stalled with no progress and no more input")
				return out
			}
		}
	}
}
