package render

import (
	"encoding/json"
	"io"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

type sentenceJSON struct {
	ID    string              `json:"id"`
	Text  string              `json:"text"`
	Annot map[string][]string `json:"annot"`
}

// WriteSentenceJSON dumps one merged sentence with all ids resolved back to
// names.
func WriteSentenceJSON(w io.Writer, s *sentence.Sentence, attrVocab, annVocab *vocab.Vocabulary) error {
	attrNames := attrVocab.Words()
	annNames := annVocab.Words()

	out := sentenceJSON{ID: s.ID, Text: s.Text, Annot: map[string][]string{}}
	for annID, attrs := range s.Annot {
		names := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			names = append(names, attrNames[attr])
		}
		out.Annot[annNames[annID]] = names
	}
	return json.NewEncoder(w).Encode(out)
}
