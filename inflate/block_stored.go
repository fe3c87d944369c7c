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

// stepUncompressedHeader reads the 4-byte LEN/NLEN header of a stored
// block. alignToByte (done by the caller, stepBlockHeader) already
// discarded the fractional bits of the byte that carried BFINAL/BTYPE, so
// these 4 bytes come straight off the input cursor, not through the bit
// reader.
//
// Unlike the source this was distilled from, which reported a hard
// DATA_ERROR on a short read here, running out of input mid-header is
// ordinary starvation: rawHeaderLen remembers how many of the 4 bytes have
// already arrived, so the next Run call resumes exactly where this one
// stopped.
func (d *Decompressor) stepUncompressedHeader(in *cursorIn) stepOutcome {
	for d.rawHeaderLen < 4 {
		b, ok := in.nextByte()
		if !ok {
			return stepNeedInput
		}
		d.rawHeader[d.rawHeaderLen] = b
		d.rawHeaderLen++
	}
	n := int(d.rawHeader[0]) | int(d.rawHeader[1])<<8
	nn := int(d.rawHeader[2]) | int(d.rawHeader[3])<<8
	if uint16(nn) != ^uint16(n) {
		return d.corrupt()
	}
	d.pendingRaw = n
	d.block = stUncompressedCopy
	return stepOK
}

// stepUncompressedCopy copies the remaining bytes of a stored block
// straight from input to both output and the window, resuming cleanly on
// starvation of either side. Spec section 9's redesign notes call out the
// alternative of reading the bytes back out of the output buffer by
// negative offset after the fact; copying directly from the one true
// source (input) avoids the dependency on how output happens to be laid
// out in memory.
func (d *Decompressor) stepUncompressedCopy(in *cursorIn, out *cursorOut) stepOutcome {
	for d.pendingRaw > 0 {
		b, ok := in.nextByte()
		if !ok {
			return stepNeedInput
		}
		if !d.emit(out, b) {
			// Push the byte back: nextByte already advanced in.pos, but
			// emit didn't consume it, so leave pendingRaw untouched and
			// back the cursor up before reporting starvation.
			in.pos--
			return stepNeedOutput
		}
		d.pendingRaw--
	}
	if d.final {
		d.block = stDone
	} else {
		d.block = stBlockHeader
	}
	return stepOK
}
