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

import "strconv"

// CorruptInputError reports a violation of RFC 1951 at a given input byte
// offset. Once a Decompressor returns one, it is poisoned: every subsequent
// call to Run returns RunDataError without inspecting its arguments, and Err
// keeps returning this error.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return "inflate: corrupt input before offset " + strconv.FormatInt(int64(e), 10)
}

// InternalError reports a broken invariant in the decoder itself rather than
// bad input. It should never surface for any RFC 1951-conformant stream.
type InternalError string

func (e InternalError) Error() string { return "inflate: internal error: " + string(e) }
