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

package pipeline

import (
	"regexp"
	"strings"

	"github.com/maguro/osm2rdf/internal/config"
	"github.com/maguro/osm2rdf/internal/rdf"
	"github.com/maguro/osm2rdf/model"
)

var wikidataQid = regexp.MustCompile(`Q[0-9]+`)

// TagProjector turns one entity's TagList into the tag triples spec.md
// §4.8 describes, including the wikidata/wikipedia derivations and
// semicolon-key splitting. It holds no state of its own; every method
// takes the Config governing that run.
type TagProjector struct{}

// Project writes one or more triples per tag in tags, all with subject as
// their subject.
func (TagProjector) Project(w *rdf.Writer, subject rdf.Term, tags model.TagList, cfg *config.Config) error {
	for _, tag := range tags {
		if err := projectTag(w, subject, tag, cfg); err != nil {
			return err
		}
	}

	return nil
}

func projectTag(w *rdf.Writer, subject rdf.Term, tag model.Tag, cfg *config.Config) error {
	key := strings.ReplaceAll(tag.Key, " ", "_")
	predicate := rdf.IRI{PrefixLabel: rdf.PrefixOSMTag, Local: key}

	if cfg.SemicolonTagKeys[tag.Key] {
		for _, part := range strings.Split(tag.Value, ";") {
			if err := writeTagTriple(w, subject, predicate, part, tag.Key, cfg); err != nil {
				return err
			}
		}
	} else if err := writeTagTriple(w, subject, predicate, tag.Value, tag.Key, cfg); err != nil {
		return err
	}

	if cfg.SkipWikiLinks {
		return nil
	}

	if tag.Key == "wikidata" {
		if err := projectWikidata(w, subject, tag.Value, cfg); err != nil {
			return err
		}
	}

	if isWikipediaKey(tag.Key) {
		if err := projectWikipedia(w, subject, tag.Value, cfg); err != nil {
			return err
		}
	}

	return nil
}

func writeTagTriple(w *rdf.Writer, subject rdf.Term, predicate rdf.IRI, value, key string, cfg *config.Config) error {
	if dt, ok := cfg.TagDatatypes[key]; ok {
		return writeTriple(w, cfg, subject, predicate, rdf.TypedLiteral(value, dt))
	}

	return writeTriple(w, cfg, subject, predicate, rdf.PlainLiteral(value))
}

// isWikipediaKey matches spec.md §4.8's rule: the key is exactly
// "wikipedia", or ends in "wikipedia" without containing "fixme" (so
// "de:wikipedia" qualifies but "fixme:wikipedia" and "wikipedia:de" do not).
func isWikipediaKey(key string) bool {
	if key == "wikipedia" {
		return true
	}

	return strings.HasSuffix(key, "wikipedia") && !strings.Contains(key, "fixme")
}

// projectWikidata emits at most one subject osm:wikidata wd:<Qid> triple:
// split on ';', take the first segment, extract the first Q[0-9]+ match.
func projectWikidata(w *rdf.Writer, subject rdf.Term, value string, cfg *config.Config) error {
	first := strings.Split(value, ";")[0]

	qid := wikidataQid.FindString(first)
	if qid == "" {
		return nil
	}

	return writeTriple(w, cfg, subject,
		rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: "wikidata"},
		rdf.IRI{PrefixLabel: rdf.PrefixWikidataEntity, Local: qid})
}

// projectWikipedia emits subject osm:wikipedia <https://{lang}.wikipedia.org/wiki/{title}>,
// parsing value as "lang:title" or, absent a colon, treating the whole
// value as the title under the www.wikipedia.org host.
func projectWikipedia(w *rdf.Writer, subject rdf.Term, value string, cfg *config.Config) error {
	if value == "" {
		return nil
	}

	lang, title, ok := strings.Cut(value, ":")

	var target string
	if ok {
		target = "https://" + lang + ".wikipedia.org/wiki/" + title
	} else {
		target = "https://www.wikipedia.org/wiki/" + value
	}

	return writeTriple(w, cfg, subject,
		rdf.IRI{PrefixLabel: rdf.PrefixOSM, Local: "wikipedia"},
		rdf.IRI{Local: target})
}
