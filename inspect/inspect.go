// Package inspect offers an interactive prompt over a merged corpus,
// resolving sentence ids to their per-annotator attribute sets.
package inspect

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/plandok/annagree/render"
	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

type Handler struct {
	Corpus    *sentence.Corpus
	AttrVocab *vocab.Vocabulary
	AnnVocab  *vocab.Vocabulary

	// AsJSON switches the sentence rendering from the tabular form to a
	// JSON dump. Toggled at runtime with Ctrl+F.
	AsJSON bool
}

func NewHandler(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) *Handler {
	return &Handler{
		Corpus:    corp,
		AttrVocab: attrVocab,
		AnnVocab:  annVocab,
	}
}

func (h *Handler) Run() error {

	fmt.Println("🔑 Ctrl+F: toggle JSON, 🔧 quit")

	history := []string{}

	for {

		in := prompt.Input("      🔎 ", h.completer,
			prompt.OptionTitle("annagree inspect"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.AsJSON = !h.AsJSON
					fmt.Println("JSON set to " + fmt.Sprintf("%t", h.AsJSON))
				}}),
		)

		if in == "quit" {
			return nil
		}

		id := strings.TrimSpace(in)
		if id == "" {
			continue
		}
		history = append(history, in)

		s, ok := h.Corpus.Get(id)
		if !ok {
			fmt.Printf("No sentence %s\n", id)
			continue
		}

		if err := h.show(s); err != nil {
			fmt.Printf("Error rendering sentence: %v\n", err)
		}
	}
}

func (h *Handler) show(s *sentence.Sentence) error {
	if h.AsJSON {
		return render.WriteSentenceJSON(os.Stdout, s, h.AttrVocab, h.AnnVocab)
	}

	fmt.Printf("%s\t%s\n", s.ID, s.Text)
	attrNames := h.AttrVocab.Words()
	for annID, name := range h.AnnVocab.Words() {
		attrs, ok := s.Annot[annID]
		if !ok {
			continue
		}
		if len(attrs) == 0 {
			fmt.Printf("  %s\t%s\n", name, render.NoAttr)
			continue
		}
		names := make([]string, len(attrs))
		for i, attr := range attrs {
			names[i] = attrNames[attr]
		}
		fmt.Printf("  %s\t%s\n", name, strings.Join(names, ","))
	}

	counts := make([]string, 0, len(s.AttrStats))
	attrs := make([]int, 0, len(s.AttrStats))
	for attr := range s.AttrStats {
		attrs = append(attrs, attr)
	}
	sort.Ints(attrs)
	for _, attr := range attrs {
		counts = append(counts, fmt.Sprintf("%s:%d", attrNames[attr], s.AttrStats[attr]))
	}
	fmt.Printf("  counts\t%s\n", strings.Join(counts, " "))
	fmt.Printf("  full agreement\t%t\n", s.ComputeFullAgreement())
	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {

	s := []prompt.Suggest{}
	befCursor := in.TextBeforeCursor()

	if "" == befCursor {
		return s
	}

	for _, id := range h.Corpus.Order {
		if strings.HasPrefix(id, befCursor) {
			s = append(s, prompt.Suggest{Text: id, Description: h.Corpus.ByID[id].Text})
		}
	}

	return s
}
