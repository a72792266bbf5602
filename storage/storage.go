package storage

import (
	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

// ReportWriter defines the write operation for report storage
type ReportWriter interface {
	// WriteReport persists the merged corpus with all ids resolved
	// back to annotator and attribute names
	WriteReport(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) error
}
