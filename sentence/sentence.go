// Package sentence holds the merged per-sentence annotation records shared
// by every report stage.
package sentence

import "slices"

// Sentence is the merged record for one sentence id across all source files.
// Attribute and annotator ids refer to the two run-wide vocabularies.
type Sentence struct {
	ID   string
	Text string

	// Annot maps an annotator id to the sorted attribute ids that
	// annotator selected for this sentence. Exactly one entry exists per
	// annotator that processed the sentence.
	Annot map[int][]int

	// AttrStats counts, per attribute id, how many real (non-gold)
	// annotators selected it. Attributes selected only by gold are
	// present with count 0 so they survive frequency filters.
	AttrStats map[int]int

	// FullAgreement is computed late, once all annotators were merged.
	FullAgreement bool
}

func New(id, text string) *Sentence {
	return &Sentence{
		ID:        id,
		Text:      text,
		Annot:     map[int][]int{},
		AttrStats: map[int]int{},
	}
}

// ComputeFullAgreement records and returns whether every annotator produced
// the identical attribute set for this sentence.
func (s *Sentence) ComputeFullAgreement() bool {
	s.FullAgreement = true
	var first []int
	seen := false
	for _, attrs := range s.Annot {
		if !seen {
			first, seen = attrs, true
			continue
		}
		if !slices.Equal(first, attrs) {
			s.FullAgreement = false
			break
		}
	}
	return s.FullAgreement
}

// Corpus is an ordered collection of sentences. Order is the first-seen
// order during loading; it fixes the sentence axis of the ratings tensor
// and the row order of the exported report.
type Corpus struct {
	ByID  map[string]*Sentence
	Order []string
}

func NewCorpus() *Corpus {
	return &Corpus{ByID: map[string]*Sentence{}}
}

func (c *Corpus) Get(id string) (*Sentence, bool) {
	s, ok := c.ByID[id]
	return s, ok
}

// Add appends a sentence to the corpus. Callers must Get first; adding an
// existing id would duplicate it in Order.
func (c *Corpus) Add(s *Sentence) {
	c.ByID[s.ID] = s
	c.Order = append(c.Order, s.ID)
}

func (c *Corpus) Len() int {
	return len(c.Order)
}

// Sentences returns the records in corpus order.
func (c *Corpus) Sentences() []*Sentence {
	out := make([]*Sentence, 0, len(c.Order))
	for _, id := range c.Order {
		out = append(out, c.ByID[id])
	}
	return out
}
