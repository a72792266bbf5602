// Package goldeval scores every annotator, real and synthetic, against the
// gold reference annotator.
package goldeval

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

// TotalAttr is the pseudo-attribute aggregating all real attributes.
const TotalAttr = "total"

// VotePrefix marks the synthetic quorum annotators.
const VotePrefix = "min"

// Counts accumulates classification events for one annotator on one
// attribute, measured against gold.
type Counts struct {
	TP int
	FN int
	FP int
}

func (c Counts) Precision() float64 {
	if c.TP+c.FP == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FP)
}

func (c Counts) Recall() float64 {
	if c.TP+c.FN == 0 {
		return 0
	}
	return float64(c.TP) / float64(c.TP+c.FN)
}

func (c Counts) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (c Counts) volume() int {
	return c.TP + c.FN + c.FP
}

// AttrResult carries the per-annotator counts for one ranked attribute,
// split into the real annotators and the synthetic vote annotators.
type AttrResult struct {
	Attr string
	Real map[string]Counts
	Vote map[string]Counts
}

// Evaluate computes TP/FN/FP counts per attribute and non-gold annotator,
// appends the aggregate "total" row, and returns the attributes ranked by
// total event volume, highest first. It must run after vote synthesis so
// the synthetic annotators are scored too; every annotator needs an entry
// on every sentence.
func Evaluate(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary, goldName string) ([]AttrResult, error) {
	goldID, err := annVocab.ID(goldName, false)
	if err != nil {
		return nil, fmt.Errorf("goldeval: %w", err)
	}
	annNames := annVocab.Words()

	counts := map[int]map[int]*Counts{}
	var ranked []int // attribute ids in first-touch order
	touch := func(attr int) map[int]*Counts {
		m, ok := counts[attr]
		if !ok {
			m = map[int]*Counts{}
			for annID := range annNames {
				if annID != goldID {
					m[annID] = &Counts{}
				}
			}
			counts[attr] = m
			ranked = append(ranked, attr)
		}
		return m
	}

	for _, s := range corp.Sentences() {
		for annID, name := range annNames {
			if _, ok := s.Annot[annID]; !ok {
				return nil, fmt.Errorf("goldeval: no annotation from %s on %s", name, s.ID)
			}
		}
		gold := s.Annot[goldID]

		// true positives and false negatives, driven by gold's picks
		for _, attr := range gold {
			for annID := range annNames {
				if annID == goldID {
					continue
				}
				c := touch(attr)[annID]
				if slices.Contains(s.Annot[annID], attr) {
					c.TP++
				} else {
					c.FN++
				}
			}
		}

		// false positives, driven by each annotator's extra picks
		for annID := range annNames {
			if annID == goldID {
				continue
			}
			for _, attr := range s.Annot[annID] {
				if !slices.Contains(gold, attr) {
					touch(attr)[annID].FP++
				}
			}
		}
	}

	totalID, err := attrVocab.ID(TotalAttr, true)
	if err != nil {
		return nil, err
	}
	totals := map[int]*Counts{}
	for annID := range annNames {
		if annID == goldID {
			continue
		}
		t := &Counts{}
		for _, m := range counts {
			if c, ok := m[annID]; ok {
				t.TP += c.TP
				t.FN += c.FN
				t.FP += c.FP
			}
		}
		totals[annID] = t
	}
	counts[totalID] = totals
	ranked = append(ranked, totalID)

	volume := func(attr int) int {
		total := 0
		for _, c := range counts[attr] {
			total += c.volume()
		}
		return total
	}
	sort.SliceStable(ranked, func(i, j int) bool { return volume(ranked[i]) > volume(ranked[j]) })

	attrNames := attrVocab.Words()
	results := make([]AttrResult, 0, len(ranked))
	for _, attr := range ranked {
		res := AttrResult{
			Attr: attrNames[attr],
			Real: map[string]Counts{},
			Vote: map[string]Counts{},
		}
		for annID, c := range counts[attr] {
			name := annNames[annID]
			if strings.HasPrefix(name, VotePrefix) {
				res.Vote[name] = *c
			} else {
				res.Real[name] = *c
			}
		}
		results = append(results, res)
	}
	return results, nil
}
