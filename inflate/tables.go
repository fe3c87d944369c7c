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

// RFC 1951 3.2.7 and 3.2.5: the alphabets a dynamic block's header
// describes, and the length/distance code tables every Huffman block uses.
const (
	maxLit        = 286 // literal/length alphabet, symbols 0-285 assigned (286, 287 reserved)
	maxDist       = 32  // distance alphabet
	numCLen       = 19  // code-length alphabet used to transmit the other two
	maxHist       = 1 << 15
	minWindowBits = 8
	maxWindowBits = 15
)

// codeOrder is the order HCLEN 3-bit code lengths arrive in, RFC 1951
// 3.2.7. Position 16 (length code for symbol 16 of the code-length
// alphabet) is transmitted first, and so on; anything past HCLEN is assumed
// zero.
var codeOrder = [numCLen]int{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// lengthBase/lengthExtra cover length codes 257-285 (index = code-257).
// Code 285 carries no extra bits and always means length 258, the longest
// match DEFLATE can express.
var lengthBase = [29]int{
	3, 4, 5, 6, 7, 8, 9, 10, 11, 13,
	15, 17, 19, 23, 27, 31, 35, 43, 51, 59,
	67, 83, 99, 115, 131, 163, 195, 227, 258,
}

var lengthExtra = [29]uint{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1,
	1, 1, 2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 4, 4, 5, 5, 5, 5, 0,
}

// distBase/distExtra cover the full 30-entry distance alphabet. Symbols 30
// and 31 are never assigned by any conformant encoder and are rejected by
// stepSymbol before indexing here.
var distBase = [30]int{
	1, 2, 3, 4, 5, 7, 9, 13, 17, 25,
	33, 49, 65, 97, 129, 193, 257, 385, 513, 769,
	1025, 1537, 2049, 3073, 4097, 6145,
	8193, 12289, 16385, 24577,
}

var distExtra = [30]uint{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 11,
	12, 12, 13, 13,
}

// fixedLiteralLengths and fixedDistLengths are the code lengths RFC 1951
// 3.2.6 fixes for BTYPE=01 blocks. They feed the same canonical
// construction as any dynamic block's tables; see fixedhuff.go.
var fixedLiteralLengths = func() [288]int {
	var l [288]int
	for i := 0; i < 144; i++ {
		l[i] = 8
	}
	for i := 144; i < 256; i++ {
		l[i] = 9
	}
	for i := 256; i < 280; i++ {
		l[i] = 7
	}
	for i := 280; i < 288; i++ {
		l[i] = 8
	}
	return l
}()

var fixedDistLengths = func() [32]int {
	var l [32]int
	for i := range l {
		l[i] = 5
	}
	return l
}()
