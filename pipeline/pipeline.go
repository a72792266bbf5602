// Package pipeline drives one full report run over a set of annotation
// files.
//
// Stage order is load-bearing. The flat table is exported before empty
// sentences are filtered, so the written file covers the whole corpus.
// Agreement is measured before vote synthesis, so synthetic annotators do
// not enter the kappa pairs. The gold evaluation runs last and covers
// real and synthetic annotators alike.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/plandok/annagree/agreement"
	"github.com/plandok/annagree/corpus"
	"github.com/plandok/annagree/goldeval"
	"github.com/plandok/annagree/render"
	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/storage"
	"github.com/plandok/annagree/vocab"
	"github.com/plandok/annagree/vote"
)

// DefaultOutPath is where the flat table lands when no output path is given.
const DefaultOutPath = "annotation_output.tsv"

// Options configures one run.
type Options struct {
	// Paths are the annotation files to merge, in order.
	Paths []string

	// OutPath is the destination of the flat table, DefaultOutPath when
	// empty.
	OutPath string

	// Report, if non-nil, additionally persists the merged corpus.
	Report storage.ReportWriter

	// KeepEmpty skips the filter that drops sentences nobody annotated.
	KeepEmpty bool

	Config corpus.Config

	// Progress, if non-nil, is called after each file has been merged.
	Progress func(current, total int, name string)
}

// Run loads the files, exports the flat table and prints the agreement and
// gold reports to out.
func Run(opts Options, out io.Writer) error {
	if opts.OutPath == "" {
		opts.OutPath = DefaultOutPath
	}

	corp, attrVocab, annVocab, err := corpus.Load(opts.Paths, opts.Config, opts.Progress)
	if err != nil {
		return err
	}

	if err := writeTable(opts.OutPath, corp, attrVocab, annVocab); err != nil {
		return err
	}
	if opts.Report != nil {
		if err := opts.Report.WriteReport(corp, attrVocab, annVocab); err != nil {
			return err
		}
	}

	if !opts.KeepEmpty {
		corp = corpus.RemoveEmpty(corp)
	}

	stats, err := agreement.Measure(corp, attrVocab, annVocab, opts.Config.GoldName)
	if err != nil {
		return err
	}
	agreement.WriteReport(out, stats)

	if err := vote.Synthesize(corp, annVocab, opts.Config.GoldName); err != nil {
		return err
	}

	results, err := goldeval.Evaluate(corp, attrVocab, annVocab, opts.Config.GoldName)
	if err != nil {
		return err
	}
	render.WriteGoldReport(out, results)

	return nil
}

func writeTable(path string, corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err := render.WriteTSV(f, corp, attrVocab, annVocab); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	return nil
}
