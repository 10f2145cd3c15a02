// Copyright 2017-25 the original author or authors.
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

package rdf

import "fmt"

// utf8Length returns the number of bytes the UTF-8 sequence starting at c
// occupies, determined from its leading byte alone.
func utf8Length(c byte) (uint8, error) {
	switch {
	case c&0x80 == 0x00:
		return 1, nil
	case c&0xE0 == 0xC0:
		return 2, nil
	case c&0xF0 == 0xE0:
		return 3, nil
	case c&0xF8 == 0xF0:
		return 4, nil
	default:
		return 0, fmt.Errorf("invalid UTF-8 sequence start %d (dec): %w", c, ErrInvalidUTF8)
	}
}

// utf8Codepoint decodes the single UTF-8 codepoint at the start of s. The
// caller must have already established, via utf8Length, how many bytes s
// holds.
func utf8Codepoint(s string) (uint32, error) {
	if len(s) == 0 {
		return 0, fmt.Errorf("empty UTF-8 sequence: %w", ErrInvalidUTF8)
	}

	n, err := utf8Length(s[0])
	if err != nil {
		return 0, err
	}

	if len(s) < int(n) {
		return 0, fmt.Errorf("truncated UTF-8 sequence %q: %w", s, ErrInvalidUTF8)
	}

	switch n {
	case 4:
		return (uint32(s[0]&0x07) << 18) | (uint32(s[1]&0x3F) << 12) |
			(uint32(s[2]&0x3F) << 6) | uint32(s[3]&0x3F), nil
	case 3:
		return (uint32(s[0]&0x0F) << 12) | (uint32(s[1]&0x3F) << 6) | uint32(s[2]&0x3F), nil
	case 2:
		return (uint32(s[0]&0x1F) << 6) | uint32(s[1]&0x3F), nil
	default:
		return uint32(s[0] & 0x7F), nil
	}
}
