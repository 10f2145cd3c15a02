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

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringLiteralQuoteEscapesControlChars(t *testing.T) {
	assert.Equal(t, `"line1\nline2"`, stringLiteralQuote("line1\nline2"))
	assert.Equal(t, `"say \"hi\""`, stringLiteralQuote(`say "hi"`))
	assert.Equal(t, `"back\\slash"`, stringLiteralQuote(`back\slash`))
	assert.Equal(t, "\"cr\\rlf\\n\"", stringLiteralQuote("cr\rlf\n"))
}

func TestStringLiteralQuoteIdempotentUnderEscaping(t *testing.T) {
	// Invariant 3: re-escaping the same raw input always produces the same
	// escaped form.
	for _, s := range []string{`hello`, "a\nb", `"quoted"`, `back\slash`} {
		once := stringLiteralQuote(s)
		twice := stringLiteralQuote(s)
		assert.Equal(t, once, twice)
	}
}

func TestEncodeIRIREFUcharEscapesForbiddenBytes(t *testing.T) {
	out, err := encodeIRIREFUchar("a b")
	require.NoError(t, err)
	assert.Equal(t, "a\\u0020b", out)

	out, err = encodeIRIREFUchar("a<b>c")
	require.NoError(t, err)
	assert.Equal(t, "a\\u003cb\\u003ec", out)
}

func TestEncodeIRIREFUcharPassesThroughUTF8(t *testing.T) {
	out, err := encodeIRIREFUchar("café")
	require.NoError(t, err)
	assert.Equal(t, "café", out)
}

func TestEncodeIRIREFPercentEscapesSpaceAsPercent(t *testing.T) {
	// S5: a space byte in a QLever IRI local becomes %20, not a UCHAR escape.
	out, err := encodeIRIREFPercent("a b")
	require.NoError(t, err)
	assert.Equal(t, "a%20b", out)
}

func TestEncodeIRIREFPercentPassesThroughUTF8(t *testing.T) {
	out, err := encodeIRIREFPercent("café")
	require.NoError(t, err)
	assert.Equal(t, "café", out)
}

var ntIRIREFPattern = regexp.MustCompile(`^<(?:[^<>"{}|^` + "`" + `\x00-\x20\\]|\\u[0-9A-Fa-f]{4}|\\U[0-9A-Fa-f]{8})*>$`)

func TestEncodeIRIREFUcharMatchesNTGrammar(t *testing.T) {
	// Invariant 8, NT half: after escaping and wrapping in <>, the result
	// must never contain a forbidden byte unescaped.
	for _, s := range []string{"plain", "a b", `<brackets>`, "café", "q?x=1"} {
		enc, err := encodeIRIREFUchar(s)
		require.NoError(t, err)
		assert.True(t, ntIRIREFPattern.MatchString("<"+enc+">"), "encoded %q -> %q", s, enc)
	}
}

func TestEncodePNPrefixAndLocal(t *testing.T) {
	p, err := encodePN_PREFIX("osmnode")
	require.NoError(t, err)
	assert.Equal(t, "osmnode", p)

	l, err := encodePN_LOCAL("42")
	require.NoError(t, err)
	assert.Equal(t, "42", l)
}

func TestEncodePNLocalEscapesPunctuation(t *testing.T) {
	l, err := encodePN_LOCAL("a/b")
	require.NoError(t, err)
	assert.Equal(t, `a\/b`, l)

	l, err = encodePN_LOCAL("wiki?x")
	require.NoError(t, err)
	assert.Equal(t, `wiki\?x`, l)
}

func TestEncodePNLocalPercentEncodesOtherASCII(t *testing.T) {
	l, err := encodePN_LOCAL("a b")
	require.NoError(t, err)
	assert.Equal(t, "a%20b", l)
}

func TestEncodePNPrefixRejectsLeadingDigit(t *testing.T) {
	_, err := encodePN_PREFIX("9bad")
	assert.Error(t, err)
}

func TestGenerateLangTag(t *testing.T) {
	tag, err := generateLangTag("en")
	require.NoError(t, err)
	assert.Equal(t, "@en", tag)

	tag, err = generateLangTag("en-GB")
	require.NoError(t, err)
	assert.Equal(t, "@en-GB", tag)

	_, err = generateLangTag("-en")
	assert.Error(t, err)

	_, err = generateLangTag("en_GB")
	assert.Error(t, err)
}

func TestUcharFormatsShortAndLongForms(t *testing.T) {
	assert.Equal(t, "\\u0020", uchar(0x20))
	assert.Equal(t, "\\U0001f600", uchar(0x1F600))
}
