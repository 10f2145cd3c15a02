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
	"bufio"
	"fmt"
	"io"
)

// Writer serializes triples in one of the supported formats to its own
// bufio.Writer. One Writer belongs to exactly one worker goroutine for its
// entire lifetime: its blank-node counter and Stats are never touched by
// any other goroutine, so they need no locking.
type Writer struct {
	id       int
	format   Format
	prefixes *PrefixTable
	bw       *bufio.Writer

	blankCounter uint64
	stats        Stats
}

// NewWriter returns a Writer bound to worker id, writing format-encoded
// triples to w.
func NewWriter(id int, format Format, prefixes *PrefixTable, w io.Writer) *Writer {
	return &Writer{
		id:       id,
		format:   format,
		prefixes: prefixes,
		bw:       bufio.NewWriter(w),
	}
}

// WriteHeader writes the format's prefix declarations, if any. Call it at
// most once per Writer, before any triples.
func (w *Writer) WriteHeader() error {
	lines, err := w.format.WriteHeader(w.bw, w.prefixes)
	w.stats.HeaderLines += uint64(lines)
	w.stats.Lines += uint64(lines)

	return err
}

// NewBlankNode mints a fresh BlankNode scoped to this Writer's worker.
func (w *Writer) NewBlankNode() BlankNode {
	n := BlankNode{ThreadID: w.id, Counter: w.blankCounter}
	w.blankCounter++
	w.stats.BlankNodes++

	return n
}

// WriteTriple writes one "subject predicate object ." line.
func (w *Writer) WriteTriple(subject, predicate, object Term) error {
	s, err := w.render(subject)
	if err != nil {
		return fmt.Errorf("rendering subject: %w", err)
	}

	p, err := w.render(predicate)
	if err != nil {
		return fmt.Errorf("rendering predicate: %w", err)
	}

	o, err := w.render(object)
	if err != nil {
		return fmt.Errorf("rendering object: %w", err)
	}

	for _, part := range [...]string{s, " ", p, " ", o, " .\n"} {
		if _, err := w.bw.WriteString(part); err != nil {
			return err
		}
	}

	w.stats.Lines++

	return nil
}

// Flush flushes any buffered output to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Stats returns this Writer's counters as they stand right now.
func (w *Writer) Stats() Stats {
	return w.stats
}

// render renders a single Term using the Writer's Format.
func (w *Writer) render(t Term) (string, error) {
	switch v := t.(type) {
	case IRI:
		return w.format.FormatIRI(w.prefixes, v.PrefixLabel, v.Local)
	case BlankNode:
		return v.String(), nil
	case Literal:
		return w.renderLiteral(v)
	default:
		return "", fmt.Errorf("rdf: unknown term type %T", t)
	}
}

func (w *Writer) renderLiteral(l Literal) (string, error) {
	lex := stringLiteralQuote(l.Lexical)

	switch tag := l.Tag.(type) {
	case NoTypeTag, nil:
		return lex, nil
	case LangTag:
		lt, err := generateLangTag(tag.Lang)
		if err != nil {
			return "", err
		}

		return lex + lt, nil
	case DatatypeTag:
		dt, err := w.format.FormatIRI(w.prefixes, tag.Datatype.PrefixLabel, tag.Datatype.Local)
		if err != nil {
			return "", err
		}

		return lex + "^^" + dt, nil
	default:
		return "", fmt.Errorf("rdf: unknown type tag %T", l.Tag)
	}
}
