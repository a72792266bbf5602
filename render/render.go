// Package render writes the human-facing reports: the flattened
// per-sentence annotation table, the category-stats tables of the gold
// evaluation and JSON sentence dumps.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

// NoAttr is the placeholder for an annotator that selected nothing.
const NoAttr = "no_attr"

// WriteTSV writes the flattened per-sentence table: one column per
// annotator (comma-joined attribute names), the per-attribute selection
// counts and the full-agreement flag. Fields are joined with raw tabs
// because attribute lists carry embedded commas.
func WriteTSV(w io.Writer, corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) error {
	attrNames := attrVocab.Words()
	annNames := annVocab.Words()

	header := append([]string{"sen_id", "sen"}, annNames...)
	header = append(header, "attribute counts", "full_agreement")
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, s := range corp.Sentences() {
		s.ComputeFullAgreement()

		fields := []string{s.ID, s.Text}
		for annID := range annNames {
			attrs := s.Annot[annID]
			if len(attrs) == 0 {
				fields = append(fields, NoAttr)
				continue
			}
			names := make([]string, len(attrs))
			for i, attr := range attrs {
				names[i] = attrNames[attr]
			}
			fields = append(fields, strings.Join(names, ","))
		}
		fields = append(fields, attrCounts(s, attrNames), strconv.FormatBool(s.FullAgreement))

		if _, err := fmt.Fprintln(w, strings.Join(fields, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// attrCounts renders "Name:count" for every attribute any annotator
// selected, in attribute id order. The count is the number of real
// annotators that picked it.
func attrCounts(s *sentence.Sentence, attrNames []string) string {
	seen := map[int]bool{}
	var attrs []int
	for _, set := range s.Annot {
		for _, attr := range set {
			if !seen[attr] {
				seen[attr] = true
				attrs = append(attrs, attr)
			}
		}
	}
	sort.Ints(attrs)

	parts := make([]string, len(attrs))
	for i, attr := range attrs {
		parts[i] = fmt.Sprintf("%s:%d", attrNames[attr], s.AttrStats[attr])
	}
	return strings.Join(parts, " ")
}
