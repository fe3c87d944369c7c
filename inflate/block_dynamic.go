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

// stepDynamicHeader decodes a dynamic block's header: HLIT/HDIST/HCLEN,
// the code-length alphabet's own 19 code lengths, the code-length Huffman
// table built from those, and finally the literal/length and distance
// code-length vectors that table describes (with the 16/17/18 run-length
// codes of RFC 1951 3.2.7). Each phase picks up exactly where a prior
// suspension left off; none of it discards bits it can't fully use.
func (d *Decompressor) stepDynamicHeader(in *cursorIn) stepOutcome {
	switch d.dph {
	case dynCounts:
		return d.stepDynCounts(in)
	case dynCodeLengths:
		return d.stepDynCodeLengths(in)
	case dynFlatVector:
		return d.stepDynFlatVector(in)
	default:
		return d.internal("bad dynamic header phase")
	}
}

// stepDynCounts reads HLIT+257, HDIST+1, HCLEN+4. It uses the fact that all
// three are always positive once read to tell "already read" apart from
// "not read yet" across suspensions, rather than adding three more fields.
func (d *Decompressor) stepDynCounts(in *cursorIn) stepOutcome {
	if d.nlit == 0 {
		v, ok := d.bits.take(in, 5)
		if !ok {
			return stepNeedInput
		}
		d.nlit = int(v) + 257
		if d.nlit > maxLit {
			return d.corrupt()
		}
	}
	if d.ndist == 0 {
		v, ok := d.bits.take(in, 5)
		if !ok {
			return stepNeedInput
		}
		d.ndist = int(v) + 1
	}
	if d.nclen == 0 {
		v, ok := d.bits.take(in, 4)
		if !ok {
			return stepNeedInput
		}
		d.nclen = int(v) + 4
		d.clIdx = 0
		d.dph = dynCodeLengths
	}
	return stepOK
}

// stepDynCodeLengths reads the HCLEN 3-bit lengths into their permuted
// codeOrder positions and builds the code-length table they describe.
func (d *Decompressor) stepDynCodeLengths(in *cursorIn) stepOutcome {
	for d.clIdx < d.nclen {
		v, ok := d.bits.take(in, 3)
		if !ok {
			return stepNeedInput
		}
		d.codeLenLengths[codeOrder[d.clIdx]] = int(v)
		d.clIdx++
	}
	for i := d.nclen; i < numCLen; i++ {
		d.codeLenLengths[codeOrder[i]] = 0
	}
	if !d.lit.init(d.codeLenLengths[:]) {
		return d.corrupt()
	}
	d.flatIdx = 0
	d.flatRepeatOf = 0
	d.dph = dynFlatVector
	return stepOK
}

// stepDynFlatVector decodes HLIT+HDIST code-length symbols through the
// code-length table just built (temporarily installed as d.lit; the real
// literal/length table is built afterwards and replaces it). Symbols 0-15
// are literal lengths; 16/17/18 repeat a previous or zero length.
//
// flatRepeatOf records a decoded-but-not-yet-applied repeat code (16, 17 or
// 18) across a suspension between the symbol and its extra bits, per spec
// section 4.7's note that partially decoded fields must survive starvation
// without re-decoding the symbol.
func (d *Decompressor) stepDynFlatVector(in *cursorIn) stepOutcome {
	n := d.nlit + d.ndist
	for d.flatIdx < n {
		if d.flatRepeatOf == 0 {
			sym, res := d.bits.sym(in, &d.lit)
			switch res {
			case symNeedInput:
				return stepNeedInput
			case symError:
				return d.corrupt()
			}
			if sym < 16 {
				d.rawLengths[d.flatIdx] = sym
				d.flatIdx++
				continue
			}
			d.flatRepeatOf = sym
		}

		var nb uint
		var base, value int
		switch d.flatRepeatOf {
		case 16:
			if d.flatIdx == 0 {
				return d.corrupt()
			}
			nb, base, value = 2, 3, d.rawLengths[d.flatIdx-1]
		case 17:
			nb, base, value = 3, 3, 0
		case 18:
			nb, base, value = 7, 11, 0
		default:
			return d.internal("unexpected code-length symbol")
		}
		extra, ok := d.bits.take(in, nb)
		if !ok {
			return stepNeedInput
		}
		rep := base + int(extra)
		if d.flatIdx+rep > n {
			return d.corrupt()
		}
		for i := 0; i < rep; i++ {
			d.rawLengths[d.flatIdx] = value
			d.flatIdx++
		}
		d.flatRepeatOf = 0
	}

	if !d.lit.init(d.rawLengths[:d.nlit]) || !d.dist.init(d.rawLengths[d.nlit:n]) {
		return d.corrupt()
	}
	d.hl, d.hd = &d.lit, &d.dist
	d.sym = symNeedSymbol
	d.block = stSymbolLoop
	return stepOK
}
