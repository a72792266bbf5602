// Package corpus merges per-annotator sheet files into a unified sentence
// map, applying the attribute normalization rules and the per-sentence
// frequency bookkeeping the reports depend on.
package corpus

import (
	"fmt"
	"sort"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/sheet"
	"github.com/plandok/annagree/vocab"
)

// Config carries the fixed layout and normalization constants. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// IgnoreAttrs lists attribute cells dropped before interning.
	IgnoreAttrs map[string]bool

	// Replacements maps raw attribute names to their canonical form,
	// applied before vocabulary lookup.
	Replacements map[string]string

	// GoldName is the annotator treated as the reference. Its selections
	// never count toward the per-sentence attribute frequencies.
	GoldName string

	// HeaderSentinel is the required first cell of every sheet's header
	// row.
	HeaderSentinel string
}

// DefaultConfig returns the values used by the BRISE annotation rounds.
func DefaultConfig() Config {
	return Config{
		IgnoreAttrs: map[string]bool{
			"AusnahmePruefungErforderlich":          true,
			"WeitereBestimmungPruefungErforderlich": true,
			"ZuVorherigemSatzGehoerig":              true,
			"Segmentierungsfehler":                  true,
			"NoAttribute":                           true,
			"N/A":                                   true,
			"StrittigeBedeutung":                    true,
		},
		Replacements: map[string]string{
			"BBDachneigungMax": "DachneigungMax",
		},
		GoldName:       "gold",
		HeaderSentinel: "Sentence_ID",
	}
}

// Normalize maps a raw attribute name to its canonical form.
func (c Config) Normalize(attr string) string {
	if canon, ok := c.Replacements[attr]; ok {
		return canon
	}
	return attr
}

// Load reads and merges all source files in file order. It returns the
// corpus plus the attribute and annotator vocabularies built along the way.
// progress, if non-nil, is called after each file has been merged.
func Load(paths []string, cfg Config, progress func(current, total int, name string)) (*sentence.Corpus, *vocab.Vocabulary, *vocab.Vocabulary, error) {
	corp := sentence.NewCorpus()
	attrVocab := vocab.New()
	annVocab := vocab.New()

	for i, path := range paths {
		src, err := sheet.ParseSource(path)
		if err != nil {
			return nil, nil, nil, err
		}
		annID, err := annVocab.ID(src.Annotator, true)
		if err != nil {
			return nil, nil, nil, err
		}

		Logf("processing %s", path)
		rows, err := sheet.Read(path, cfg.HeaderSentinel)
		if err != nil {
			return nil, nil, nil, err
		}

		for _, row := range rows {
			if err := merge(corp, attrVocab, cfg, row, src.Annotator, annID, path); err != nil {
				return nil, nil, nil, err
			}
		}

		if progress != nil {
			progress(i+1, len(paths), path)
		}
	}
	return corp, attrVocab, annVocab, nil
}

func merge(corp *sentence.Corpus, attrVocab *vocab.Vocabulary, cfg Config, row sheet.Row, annotator string, annID int, path string) error {
	s, ok := corp.Get(row.ID)
	if !ok {
		s = sentence.New(row.ID, row.Text)
		corp.Add(s)
	} else if s.Text != row.Text {
		return fmt.Errorf("corpus: changed text in %s sentence %s", path, row.ID)
	}

	if _, dup := s.Annot[annID]; dup {
		return fmt.Errorf("corpus: duplicate annotation from %s for sentence %s in %s", annotator, row.ID, path)
	}

	seen := map[int]bool{}
	ids := []int{}
	for _, raw := range row.Attrs {
		if cfg.IgnoreAttrs[raw] {
			continue
		}
		id, err := attrVocab.ID(cfg.Normalize(raw), true)
		if err != nil {
			return err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	s.Annot[annID] = ids

	if annotator != cfg.GoldName {
		for _, id := range ids {
			s.AttrStats[id]++
		}
	} else {
		// gold selections are recorded with count 0 unless a real
		// annotator also picked them
		for _, id := range ids {
			if _, ok := s.AttrStats[id]; !ok {
				s.AttrStats[id] = 0
			}
		}
	}
	return nil
}

// RemoveEmpty returns a corpus without the sentences no annotator selected
// any attribute for. The vocabularies are untouched.
func RemoveEmpty(corp *sentence.Corpus) *sentence.Corpus {
	kept := sentence.NewCorpus()
	for _, s := range corp.Sentences() {
		empty := true
		for _, attrs := range s.Annot {
			if len(attrs) > 0 {
				empty = false
				break
			}
		}
		if !empty {
			kept.Add(s)
		}
	}
	Logf("ignoring sentences with no annotation from anyone, keeping %d of %d sens", kept.Len(), corp.Len())
	return kept
}
