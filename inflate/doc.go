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

// Package inflate implements the core of a streaming RFC 1951 DEFLATE
// decompressor.
//
// Unlike compress/flate, a Decompressor here never blocks on an io.Reader.
// It is handed a slice of input and a slice of output space on every call to
// Run and suspends cleanly whenever either is exhausted mid-symbol, so that
// a caller can drive it with buffers of any size, fed in any number of
// pieces, across any number of calls. Package cursor wraps a Decompressor in
// the zlib-style init/step/end cursor API; most callers want that package
// instead of this one.
package inflate
