package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/plandok/annagree/goldeval"
)

// topAttrs bounds the gold report to the highest-volume attributes.
const topAttrs = 10

// WriteCatStats prints one classification-metrics table: a row per
// annotator with its counts, precision, recall and F-score.
func WriteCatStats(w io.Writer, stats map[string]goldeval.Counts) {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "annotator\tTP\tFP\tFN\tP\tR\tF")
	for _, name := range names {
		c := stats[name]
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			name, c.TP, c.FP, c.FN, c.Precision(), c.Recall(), c.F1())
	}
}

// WriteGoldReport prints the top ranked attributes of the gold evaluation,
// the real annotators' table first, the vote annotators' second.
func WriteGoldReport(w io.Writer, results []goldeval.AttrResult) {
	n := len(results)
	if n > topAttrs {
		n = topAttrs
	}
	for _, res := range results[:n] {
		fmt.Fprintln(w, "===============")
		fmt.Fprintln(w, res.Attr)
		fmt.Fprintln(w, "===============")
		WriteCatStats(w, res.Real)
		WriteCatStats(w, res.Vote)
	}
}
