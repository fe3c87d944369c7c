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

// cursorIn is a read-only view over the caller's input slice for the
// duration of one Step call. pos advances as bytes are pulled into the bit
// buffer or copied directly (uncompressed blocks); it never moves past
// len(buf).
type cursorIn struct {
	buf []byte
	pos int
}

func (c *cursorIn) avail() int { return len(c.buf) - c.pos }

func (c *cursorIn) nextByte() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}
	b := c.buf[c.pos]
	c.pos++
	return b, true
}

// cursorOut is a write-only view over the caller's output slice for the
// duration of one Step call.
type cursorOut struct {
	buf []byte
	pos int
}

func (c *cursorOut) avail() int { return len(c.buf) - c.pos }

func (c *cursorOut) putByte(b byte) bool {
	if c.pos >= len(c.buf) {
		return false
	}
	c.buf[c.pos] = b
	c.pos++
	return true
}

// bitReader pulls LSB-first bits out of a cursorIn, straddling byte
// boundaries in a small internal buffer. It never reads a byte it doesn't
// need: fill only pulls bytes while the buffer holds fewer than the bits
// requested, so a short read leaves the input cursor exactly where the next
// Step call must resume.
//
// Per RFC 1951 3.1.1, bits are packed into each byte starting from the least
// significant bit, and later bytes contribute higher bit positions, so a
// plain little-endian OR-and-shift accumulator is the natural fit.
type bitReader struct {
	buf uint32 // pending bits, low bit first
	n   uint   // number of valid bits in buf, always < 32
}

// fill ensures at least need bits are buffered, pulling whole bytes from in
// as needed. It reports false, leaving buf/n and in.pos untouched beyond any
// bytes it did manage to consume, if the input runs out first.
func (br *bitReader) fill(in *cursorIn, need uint) bool {
	for br.n < need {
		b, ok := in.nextByte()
		if !ok {
			return false
		}
		br.buf |= uint32(b) << br.n
		br.n += 8
	}
	return true
}

// peek returns the next n bits (1 <= n <= 16) without consuming them. It
// reports false if the input does not yet hold n bits.
func (br *bitReader) peek(in *cursorIn, n uint) (uint32, bool) {
	if !br.fill(in, n) {
		return 0, false
	}
	return br.buf & (1<<n - 1), true
}

// dropBits discards n bits already inspected via peek. Separated from peek
// so a caller that decided what to do with n bits (e.g. a Huffman chunk
// lookup that determined the real code length only after peeking) pays for
// the shift exactly once.
func (br *bitReader) dropBits(n uint) {
	br.buf >>= n
	br.n -= n
}

// take is peek followed by dropBits, for the common case of an
// unconditional fixed-width field (length/distance extra bits, block
// header, HLIT/HDIST/HCLEN).
func (br *bitReader) take(in *cursorIn, n uint) (uint32, bool) {
	v, ok := br.peek(in, n)
	if !ok {
		return 0, false
	}
	br.dropBits(n)
	return v, true
}

// alignToByte discards the fractional bits left over from the current input
// byte, required before an uncompressed block's LEN/NLEN header. Since fill
// only ever buffers whole bytes, the discarded bits are always zero padding
// written by the encoder for exactly this purpose.
func (br *bitReader) alignToByte() {
	drop := br.n % 8
	br.buf >>= drop
	br.n -= drop
}
