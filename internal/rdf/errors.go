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

import "errors"

// The four encoding errors a term can fail with while being rendered into
// N-Triples/Turtle grammar. Each wraps more context (the offending string,
// the specific byte or character at fault) before reaching the caller, but
// always remains errors.Is-comparable against its sentinel so a caller can
// tell a recoverable encoding problem apart from anything else a Writer
// might fail with.
var (
	ErrInvalidUTF8     = errors.New("rdf: invalid utf-8")
	ErrInvalidPNPrefix = errors.New("rdf: invalid prefixed-name prefix")
	ErrInvalidPNLocal  = errors.New("rdf: invalid prefixed-name local part")
	ErrInvalidLangTag  = errors.New("rdf: invalid language tag")
)

// IsEncodingError reports whether err is one of the four term-encoding
// errors above, recoverable by skipping the offending triple rather than
// aborting the run.
func IsEncodingError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidUTF8):
	case errors.Is(err, ErrInvalidPNPrefix):
	case errors.Is(err, ErrInvalidPNLocal):
	case errors.Is(err, ErrInvalidLangTag):
	default:
		return false
	}

	return true
}
