// Package vote derives the synthetic quorum annotators min1, min2 and min3:
// adjudication strategies keeping the attributes chosen by at least that
// many real annotators.
package vote

import (
	"fmt"
	"sort"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

// Quorums are the thresholds a synthetic annotator is derived for.
var Quorums = []int{1, 2, 3}

// Synthesize adds one annotation set per quorum threshold to every
// sentence: the sorted attributes selected by at least that many non-gold
// annotators. The synthetic annotators are interned as min<n> and the
// corpus is mutated in place.
//
// Synthesize must run after the empty-sentence filter, so the quorums only
// reflect surviving sentences, and before the gold evaluation.
func Synthesize(corp *sentence.Corpus, annVocab *vocab.Vocabulary, goldName string) error {
	// snapshot before the vote ids are interned
	realAnns := annVocab.Words()

	voteIDs := make(map[int]int, len(Quorums))
	for _, n := range Quorums {
		id, err := annVocab.ID(fmt.Sprintf("min%d", n), true)
		if err != nil {
			return err
		}
		voteIDs[n] = id
	}

	for _, s := range corp.Sentences() {
		counts := map[int]int{}
		for annID, name := range realAnns {
			if name == goldName {
				continue
			}
			attrs, ok := s.Annot[annID]
			if !ok {
				return fmt.Errorf("vote: no annotation from %s on %s", name, s.ID)
			}
			for _, attr := range attrs {
				counts[attr]++
			}
		}

		for _, n := range Quorums {
			attrs := []int{}
			for attr, count := range counts {
				if count >= n {
					attrs = append(attrs, attr)
				}
			}
			sort.Ints(attrs)
			s.Annot[voteIDs[n]] = attrs
		}
	}
	return nil
}
