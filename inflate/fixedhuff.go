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

import "sync"

// The fixed Huffman tables are built once, lazily, through the exact same
// canonical-code construction dynamic blocks use (huffmanDecoder.init).
// Earlier DEFLATE decoders in this lineage special-cased the fixed
// encoding with a hand-written bit-prefix recognizer ("if the first bit is
// 0 ... else if the next bit is 0 ..."); that approach is fragile and, in
// the version it was copied from here, silently mis-decoded symbols 286 and
// 287 by construction (the 280-287 range was never reachable by the
// recognizer's cases). Routing fixed blocks through the same table-driven
// decode path as dynamic blocks removes the whole class of bug.
var (
	fixedLitOnce  sync.Once
	fixedDistOnce sync.Once
	fixedLit      huffmanDecoder
	fixedDist     huffmanDecoder
)

func fixedLiteralTable() *huffmanDecoder {
	fixedLitOnce.Do(func() {
		if !fixedLit.init(fixedLiteralLengths[:]) {
			panic("inflate: fixed literal/length table is not canonical")
		}
	})
	return &fixedLit
}

func fixedDistTable() *huffmanDecoder {
	fixedDistOnce.Do(func() {
		if !fixedDist.init(fixedDistLengths[:]) {
			panic("inflate: fixed distance table is not canonical")
		}
	})
	return &fixedDist
}
