// Package agreement builds the dense ratings tensor over the merged corpus
// and reports pairwise Cohen's kappa per attribute, split into
// gold-involving and inter-annotator pairs.
package agreement

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

// Ratings is a dense binary tensor indexed by (attribute, annotator,
// sentence). The sentence axis order is captured once from the corpus and
// fixed for the whole computation.
type Ratings struct {
	attrs int
	anns  int
	order []string
	data  []int8
}

// BuildRatings fills the tensor from the corpus. Every annotator known to
// the vocabulary must have an entry on every sentence.
func BuildRatings(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) (*Ratings, error) {
	annNames := annVocab.Words()
	r := &Ratings{
		attrs: attrVocab.Len(),
		anns:  len(annNames),
		order: append([]string(nil), corp.Order...),
	}
	r.data = make([]int8, r.attrs*r.anns*len(r.order))

	for i, s := range corp.Sentences() {
		for annID, name := range annNames {
			attrs, ok := s.Annot[annID]
			if !ok {
				return nil, fmt.Errorf("agreement: no annotation from %s on %s", name, s.ID)
			}
			for _, attr := range attrs {
				r.data[r.index(attr, annID, i)] = 1
			}
		}
	}
	return r, nil
}

func (r *Ratings) index(attr, ann, sen int) int {
	return (attr*r.anns+ann)*len(r.order) + sen
}

// Vector returns the binary presence vector of one (attribute, annotator)
// pair across all sentences. The returned slice aliases the tensor.
func (r *Ratings) Vector(attr, ann int) []int8 {
	start := r.index(attr, ann, 0)
	return r.data[start : start+len(r.order)]
}

// Freq returns the total number of selections of attr across all annotators
// and sentences.
func (r *Ratings) Freq(attr int) int {
	total := 0
	start := r.index(attr, 0, 0)
	for _, v := range r.data[start : start+r.anns*len(r.order)] {
		total += int(v)
	}
	return total
}

// Kappa computes Cohen's kappa between two binary rating vectors. A pair
// where neither rater ever selected the attribute is defined as 1.0; if the
// raters otherwise agree with probability 1 by chance alone, the statistic
// is undefined and NaN is returned.
func Kappa(a, b []int8) float64 {
	var both, neither, selA, selB int
	for i := range a {
		switch {
		case a[i] == 1 && b[i] == 1:
			both++
		case a[i] == 0 && b[i] == 0:
			neither++
		}
		if a[i] == 1 {
			selA++
		}
		if b[i] == 1 {
			selB++
		}
	}
	if selA == 0 && selB == 0 {
		return 1.0
	}

	n := float64(len(a))
	po := float64(both+neither) / n
	pa, pb := float64(selA)/n, float64(selB)/n
	pe := pa*pb + (1-pa)*(1-pb)
	if pe == 1 {
		return math.NaN()
	}
	return (po - pe) / (1 - pe)
}

// AttrStat summarises one attribute's agreement figures.
type AttrStat struct {
	Freq        int
	Name        string
	AvgGold     float64
	GoldKappas  []float64
	AvgInter    float64
	InterKappas []float64

	// CountsBySen is a histogram of the per-sentence real-annotator
	// counts for this attribute, rendered as "count:sentences" pairs in
	// descending count order.
	CountsBySen string
}

// Measure computes, per attribute, the kappa of every unordered pair of
// distinct annotators across all sentences and returns the attributes
// sorted by descending selection frequency.
func Measure(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary, goldName string) ([]AttrStat, error) {
	ratings, err := BuildRatings(corp, attrVocab, annVocab)
	if err != nil {
		return nil, err
	}

	countsBySen := make([]map[int]int, attrVocab.Len())
	for i := range countsBySen {
		countsBySen[i] = map[int]int{}
	}
	for _, s := range corp.Sentences() {
		for attr, count := range s.AttrStats {
			countsBySen[attr][count]++
		}
	}

	annNames := annVocab.Words()
	stats := make([]AttrStat, 0, attrVocab.Len())
	for attr, attrName := range attrVocab.Words() {
		var goldKappas, interKappas []float64
		for ann1 := range annNames {
			for ann2 := ann1 + 1; ann2 < len(annNames); ann2++ {
				kappa := Kappa(ratings.Vector(attr, ann1), ratings.Vector(attr, ann2))
				if annNames[ann1] == goldName || annNames[ann2] == goldName {
					goldKappas = append(goldKappas, kappa)
				} else {
					interKappas = append(interKappas, kappa)
				}
			}
		}

		st := AttrStat{
			Freq:        ratings.Freq(attr),
			Name:        attrName,
			GoldKappas:  goldKappas,
			InterKappas: interKappas,
			CountsBySen: histogram(countsBySen[attr]),
		}
		if len(goldKappas) > 0 {
			st.AvgGold = stat.Mean(goldKappas, nil)
		}
		if len(interKappas) > 0 {
			st.AvgInter = stat.Mean(interKappas, nil)
		}
		stats = append(stats, st)
	}

	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Freq > stats[j].Freq })
	return stats, nil
}

func histogram(counts map[int]int) string {
	keys := make([]int, 0, len(counts))
	for n := range counts {
		keys = append(keys, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	parts := make([]string, len(keys))
	for i, n := range keys {
		parts[i] = fmt.Sprintf("%d:%d", n, counts[n])
	}
	return strings.Join(parts, " ")
}

// WriteReport renders the agreement table as tab-separated text, one row
// per attribute in the order produced by Measure.
func WriteReport(w io.Writer, stats []AttrStat) {
	fmt.Fprintln(w, "Freq\tAttr\tAvg K (gold)\tKs (gold)\tAvg K (inter)\tKs (inter)\tcounts by sen")
	for _, st := range stats {
		goldStr := "N/A"
		if len(st.GoldKappas) > 0 {
			goldStr = joinKappas(st.GoldKappas)
		}
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%.2f\t%s\t%s\n",
			st.Freq, st.Name, st.AvgGold, goldStr, st.AvgInter, joinKappas(st.InterKappas), st.CountsBySen)
	}
}

func joinKappas(kappas []float64) string {
	parts := make([]string, len(kappas))
	for i, k := range kappas {
		parts[i] = fmt.Sprintf("%.2f", k)
	}
	return strings.Join(parts, " ")
}
