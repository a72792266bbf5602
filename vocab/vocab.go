// Package vocab implements a bijective interner assigning small sequential
// ids to strings. Ids are assigned in encounter order and are stable for the
// lifetime of a run; entries are never removed or renumbered.
package vocab

import "fmt"

type Vocabulary struct {
	ids   map[string]int
	words []string
}

func New() *Vocabulary {
	return &Vocabulary{ids: map[string]int{}}
}

// ID returns the id recorded for word. If word is unknown and allowNew is
// true, the next sequential id is assigned and recorded in both directions;
// if allowNew is false, an error is returned.
func (v *Vocabulary) ID(word string, allowNew bool) (int, error) {
	if id, ok := v.ids[word]; ok {
		return id, nil
	}
	if !allowNew {
		return 0, fmt.Errorf("vocab: unknown word %q", word)
	}
	id := len(v.words)
	v.ids[word] = id
	v.words = append(v.words, word)
	return id, nil
}

// Word returns the word recorded for id.
func (v *Vocabulary) Word(id int) (string, error) {
	if id < 0 || id >= len(v.words) {
		return "", fmt.Errorf("vocab: unknown id %d", id)
	}
	return v.words[id], nil
}

// Len returns the number of distinct entries.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns all entries in insertion order, so that the index of each
// word is its id.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}
