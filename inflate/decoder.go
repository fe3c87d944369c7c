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

// blockState is the high-level state of spec section 3: which phase of
// decoding a single DEFLATE block the Decompressor is in.
type blockState int

const (
	stBlockHeader blockState = iota
	stUncompressedHeader
	stUncompressedCopy
	stDynamicHeader
	stSymbolLoop
	stDone
)

// dynPhase tracks progress through a dynamic block's header, itself a
// multi-step decode (HLIT/HDIST/HCLEN, then the code-length alphabet, then
// the literal/length and distance code-length vectors) that must suspend
// cleanly at any point.
type dynPhase int

const (
	dynCounts dynPhase = iota
	dynCodeLengths
	dynFlatVector
)

// symPhase is the small sub-state machine spec section 4.7/9 asks for: the
// symbol loop can suspend after a literal/length symbol but before its
// extra bits, after a length but before a distance symbol, and so on.
type symPhase int

const (
	symNeedSymbol symPhase = iota
	symPendingLiteral
	symNeedLengthExtra
	symNeedDistSymbol
	symNeedDistExtra
	symCopying
)

// Decompressor is the persistent, resumable state of one DEFLATE stream. A
// zero Decompressor is not usable; construct one with New. It is not safe
// for concurrent use; distinct Decompressors are fully independent.
type Decompressor struct {
	bits bitReader

	block    blockState
	final    bool // BFINAL observed on the block currently in progress
	poisoned bool
	err      error

	win slidingWindow

	lit, dist      huffmanDecoder
	rawLengths     [maxLit + maxDist]int
	codeLenLengths [numCLen]int

	hl, hd *huffmanDecoder // tables in effect for the current block

	// dynamic header sub-state
	dph                dynPhase
	nlit, ndist, nclen int
	clIdx              int
	flatIdx            int
	flatRepeatOf       int // 0 when no repeat code is pending, else 16/17/18

	// uncompressed block sub-state
	rawHeader    [4]byte
	rawHeaderLen int
	pendingRaw   int

	// symbol loop sub-state
	sym          symPhase
	pendingByte  byte
	lengthSymbol int
	length       int
	distSymbol   int
	copyDist     int
	copyLeft     int

	totalIn, totalOut uint64
}

// New allocates a Decompressor with a window of 2^windowBits bytes.
// windowBits must be in [8,15]; spec section 4.8 also accepts a negative
// value (for zlib-header-compatible callers), which affects nothing here
// beyond its absolute value.
func New(windowBits int) (*Decompressor, error) {
	wb := windowBits
	if wb < 0 {
		wb = -wb
	}
	if wb < minWindowBits || wb > maxWindowBits {
		return nil, InternalError("window bits out of range")
	}
	d := &Decompressor{
		win:   newSlidingWindow(wb),
		block: stBlockHeader,
	}
	return d, nil
}

// Err returns the error that poisoned the decoder, or nil if it hasn't.
func (d *Decompressor) Err() error { return d.err }

// Poisoned reports whether a prior call returned a data error; once true it
// stays true until the Decompressor is discarded.
func (d *Decompressor) Poisoned() bool { return d.poisoned }

// Done reports whether the final block's end-of-block symbol has been
// fully consumed.
func (d *Decompressor) Done() bool { return d.block == stDone }

// TotalIn and TotalOut are the cumulative bytes consumed from input and
// emitted to output since New.
func (d *Decompressor) TotalIn() uint64  { return d.totalIn }
func (d *Decompressor) TotalOut() uint64 { return d.totalOut }

// RunResult is the outcome of a Run call.
type RunResult int

const (
	// RunNeedMore means input or output was exhausted before the stream
	// ended; Run may be called again with more of either.
	RunNeedMore RunResult = iota
	// RunStreamEnd means the final block's end-of-block symbol was seen.
	// No further bytes will ever be produced by this Decompressor.
	RunStreamEnd
	// RunDataError means the input violated RFC 1951. The Decompressor is
	// now poisoned; every subsequent Run call returns RunDataError again
	// without inspecting its arguments.
	RunDataError
)

// Run decodes as much as it can from in into out, stopping when in or out
// is exhausted, the stream ends, or the input is found corrupt. It reports
// how many bytes of each it used, whether any internal progress occurred
// even if neither count changed (e.g. finishing a symbol decode using bits
// already buffered from an earlier call), and the overall result.
func (d *Decompressor) Run(in, out []byte) (consumed, produced int, progressed bool, res RunResult) {
	if d.poisoned {
		return 0, 0, false, RunDataError
	}

	ci := cursorIn{buf: in}
	co := cursorOut{buf: out}
	startBits := d.bits.n

	for {
		if d.block == stDone {
			res = RunStreamEnd
			break
		}
		oc := d.step(&ci, &co)
		switch oc {
		case stepOK:
			progressed = true
			continue
		case stepNeedInput, stepNeedOutput:
			res = RunNeedMore
			goto doneLoop
		case stepDataError:
			if _, ok := d.err.(CorruptInputError); ok {
				d.err = CorruptInputError(d.totalIn + uint64(ci.pos))
			}
			d.poisoned = true
			res = RunDataError
			goto doneLoop
		}
	}
doneLoop:
	if ci.pos > 0 || co.pos > 0 || d.bits.n != startBits {
		progressed = true
	}
	d.totalIn += uint64(ci.pos)
	d.totalOut += uint64(co.pos)
	return ci.pos, co.pos, progressed, res
}

// stepOutcome is the result of one bounded unit of decode work.
type stepOutcome int

const (
	stepOK stepOutcome = iota
	stepNeedInput
	stepNeedOutput
	stepDataError
)

func (d *Decompressor) corrupt() stepOutcome {
	d.err = CorruptInputError(d.totalIn)
	return stepDataError
}

func (d *Decompressor) internal(msg string) stepOutcome {
	d.err = InternalError(msg)
	return stepDataError
}

// emit delivers one byte to both the caller's output cursor and the
// sliding window in a single step, the way spec section 9's redesign notes
// require (the source this lineage was distilled from instead read the
// just-written output bytes back via negative indexing from the output
// pointer, which breaks if output is ever written out-of-place).
func (d *Decompressor) emit(out *cursorOut, b byte) bool {
	if !out.putByte(b) {
		return false
	}
	d.win.put(b)
	return true
}

// step dispatches on the current high-level state and runs that state's
// work: a block header, a stored block's LEN/NLEN header or its byte copy,
// a dynamic-header phase, or the symbol loop, which keeps decoding symbols
// until the end of the block. It never blocks; any shortfall in in or out
// is reported and fully resumable on the next call.
func (d *Decompressor) step(in *cursorIn, out *cursorOut) stepOutcome {
	switch d.block {
	case stBlockHeader:
		return d.stepBlockHeader(in)
	case stUncompressedHeader:
		return d.stepUncompressedHeader(in)
	case stUncompressedCopy:
		return d.stepUncompressedCopy(in, out)
	case stDynamicHeader:
		return d.stepDynamicHeader(in)
	case stSymbolLoop:
		return d.stepSymbol(in, out)
	default:
		return d.internal("step called in terminal state")
	}
}

func (d *Decompressor) stepBlockHeader(in *cursorIn) stepOutcome {
	v, ok := d.bits.take(in, 3)
	if !ok {
		return stepNeedInput
	}
	d.final = v&1 == 1
	switch (v >> 1) & 3 {
	case 0: // stored
		d.bits.alignToByte()
		d.rawHeaderLen = 0
		d.block = stUncompressedHeader
	case 1: // fixed Huffman
		d.hl = fixedLiteralTable()
		d.hd = fixedDistTable()
		d.sym = symNeedSymbol
		d.block = stSymbolLoop
	case 2: // dynamic Huffman
		d.dph = dynCounts
		d.nlit, d.ndist, d.nclen = 0, 0, 0
		d.block = stDynamicHeader
	case 3: // reserved
		return d.corrupt()
	}
	return stepOK
}
