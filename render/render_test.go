package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plandok/annagree/goldeval"
	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/vocab"
)

func testCorpus(t *testing.T) (*sentence.Corpus, *vocab.Vocabulary, *vocab.Vocabulary) {
	t.Helper()
	attrVocab := vocab.New()
	annVocab := vocab.New()
	attrA, _ := attrVocab.ID("AttrA", true)
	attrB, _ := attrVocab.ID("AttrB", true)
	gold, _ := annVocab.ID("gold", true)
	ann1, _ := annVocab.ID("ann1", true)

	corp := sentence.NewCorpus()
	s1 := sentence.New("s1", "Der erste Satz.")
	s1.Annot[gold] = []int{attrA, attrB}
	s1.Annot[ann1] = []int{attrA, attrB}
	s1.AttrStats[attrA] = 1
	s1.AttrStats[attrB] = 1
	corp.Add(s1)

	s2 := sentence.New("s2", "Der zweite Satz.")
	s2.Annot[gold] = []int{attrA}
	s2.Annot[ann1] = []int{}
	s2.AttrStats[attrA] = 0
	corp.Add(s2)

	return corp, attrVocab, annVocab
}

func TestWriteTSV(t *testing.T) {
	corp, attrVocab, annVocab := testCorpus(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTSV(&buf, corp, attrVocab, annVocab))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "sen_id\tsen\tgold\tann1\tattribute counts\tfull_agreement", lines[0])
	assert.Equal(t, "s1\tDer erste Satz.\tAttrA,AttrB\tAttrA,AttrB\tAttrA:1 AttrB:1\ttrue", lines[1])
	assert.Equal(t, "s2\tDer zweite Satz.\tAttrA\tno_attr\tAttrA:0\tfalse", lines[2])
}

func TestWriteCatStats(t *testing.T) {
	var buf bytes.Buffer
	WriteCatStats(&buf, map[string]goldeval.Counts{
		"ann1": {TP: 1},
		"ann2": {FN: 1, FP: 1},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "annotator\tTP\tFP\tFN\tP\tR\tF", lines[0])
	assert.Equal(t, "ann1\t1\t0\t0\t1.0000\t1.0000\t1.0000", lines[1])
	assert.Equal(t, "ann2\t0\t1\t1\t0.0000\t0.0000\t0.0000", lines[2])
}

func TestWriteGoldReportTopTen(t *testing.T) {
	results := make([]goldeval.AttrResult, 0, 12)
	for i := 0; i < 12; i++ {
		results = append(results, goldeval.AttrResult{
			Attr: string(rune('a' + i)),
			Real: map[string]goldeval.Counts{"ann1": {TP: 12 - i}},
			Vote: map[string]goldeval.Counts{"min1": {TP: 12 - i}},
		})
	}

	var buf bytes.Buffer
	WriteGoldReport(&buf, results)

	out := buf.String()
	assert.Equal(t, 10, strings.Count(out, "===============\n")/2)
	assert.Contains(t, out, "min1")
	assert.NotContains(t, out, "\nk\n")
}

func TestWriteSentenceJSON(t *testing.T) {
	corp, attrVocab, annVocab := testCorpus(t)
	s, _ := corp.Get("s2")

	var buf bytes.Buffer
	require.NoError(t, WriteSentenceJSON(&buf, s, attrVocab, annVocab))

	var got sentenceJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "s2", got.ID)
	assert.Equal(t, "Der zweite Satz.", got.Text)
	assert.Equal(t, []string{"AttrA"}, got.Annot["gold"])
	assert.Empty(t, got.Annot["ann1"])
}
