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

// stepSymbol runs the literal/length/distance loop shared by fixed and
// dynamic blocks (spec section 4.6/4.7), using whichever tables d.hl/d.hd
// were set to by the block header. It advances through symPhase one field
// at a time so a short read or a full output buffer can suspend it between
// any two fields without losing or re-decoding anything.
func (d *Decompressor) stepSymbol(in *cursorIn, out *cursorOut) stepOutcome {
	for {
		switch d.sym {
		case symNeedSymbol:
			sym, res := d.bits.sym(in, d.hl)
			switch res {
			case symNeedInput:
				return stepNeedInput
			case symError:
				return d.corrupt()
			}
			switch {
			case sym < 256:
				d.pendingByte = byte(sym)
				d.sym = symPendingLiteral
			case sym == 256:
				if d.final {
					d.block = stDone
				} else {
					d.block = stBlockHeader
				}
				return stepOK
			case sym < 286:
				d.lengthSymbol = sym - 257
				d.sym = symNeedLengthExtra
			default:
				return d.corrupt()
			}

		case symPendingLiteral:
			if !d.emit(out, d.pendingByte) {
				return stepNeedOutput
			}
			d.sym = symNeedSymbol

		case symNeedLengthExtra:
			nb := lengthExtra[d.lengthSymbol]
			var extra uint32
			if nb > 0 {
				v, ok := d.bits.take(in, nb)
				if !ok {
					return stepNeedInput
				}
				extra = v
			}
			d.length = lengthBase[d.lengthSymbol] + int(extra)
			d.sym = symNeedDistSymbol

		case symNeedDistSymbol:
			sym, res := d.bits.sym(in, d.hd)
			switch res {
			case symNeedInput:
				return stepNeedInput
			case symError:
				return d.corrupt()
			}
			if sym >= len(distBase) {
				// Symbols 30 and 31 of the distance alphabet are reserved:
				// maxDist (32) is the wire-format HDIST ceiling, not the
				// count of distance codes RFC 1951 actually assigns.
				return d.corrupt()
			}
			d.distSymbol = sym
			d.sym = symNeedDistExtra

		case symNeedDistExtra:
			nb := distExtra[d.distSymbol]
			var extra uint32
			if nb > 0 {
				v, ok := d.bits.take(in, nb)
				if !ok {
					return stepNeedInput
				}
				extra = v
			}
			dist := distBase[d.distSymbol] + int(extra)
			if dist <= 0 || dist > d.win.size() || uint64(dist) > d.totalOut+uint64(out.pos) {
				return d.corrupt()
			}
			d.copyDist = dist
			d.copyLeft = d.length
			d.sym = symCopying

		case symCopying:
			for d.copyLeft > 0 {
				b := d.win.byteAt(d.copyDist)
				if !d.emit(out, b) {
					return stepNeedOutput
				}
				d.copyLeft--
			}
			d.sym = symNeedSymbol

		default:
			return d.internal("bad symbol phase")
		}
	}
}
