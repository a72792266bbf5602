package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMain(m *testing.M) {
	SetLogger(nil)
	os.Exit(m.Run())
}

func sheetRow(id, text string, attrs ...string) []any {
	row := []any{id, text}
	for i := 0; i < 5; i++ {
		attr := ""
		if i < len(attrs) {
			attr = attrs[i]
		}
		row = append(row, "", attr)
	}
	return row
}

func writeSheet(t *testing.T, path string, dataRows ...[]any) {
	t.Helper()
	f := excelize.NewFile()
	head := []any{"Sentence_ID", "Sentence"}
	for i := 0; i < 5; i++ {
		head = append(head, "Category", "Attribute")
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &head))
	for i, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
}

func TestLoadMerge(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	ann1 := filepath.Join(dir, "doc1_ann1.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "AttrA"))
	writeSheet(t, ann1, sheetRow("s1", "Der Satz.", "AttrA", "AttrB"))

	corp, attrVocab, annVocab, err := Load([]string{gold, ann1}, DefaultConfig(), nil)
	require.NoError(t, err)

	require.Equal(t, 1, corp.Len())
	assert.Equal(t, []string{"gold", "ann1"}, annVocab.Words())
	assert.Equal(t, []string{"AttrA", "AttrB"}, attrVocab.Words())

	s, ok := corp.Get("s1")
	require.True(t, ok)
	assert.Equal(t, []int{0}, s.Annot[0])
	assert.Equal(t, []int{0, 1}, s.Annot[1])

	// gold's pick counted once (by ann1), ann1's extra pick counted once
	assert.Equal(t, map[int]int{0: 1, 1: 1}, s.AttrStats)
}

func TestLoadDuplicateAnnotation(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "AttrA"))

	_, _, _, err := Load([]string{gold, gold}, DefaultConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate annotation")
}

func TestLoadTextMismatch(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	ann1 := filepath.Join(dir, "doc1_ann1.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "AttrA"))
	writeSheet(t, ann1, sheetRow("s1", "Ein anderer Satz.", "AttrA"))

	_, _, _, err := Load([]string{gold, ann1}, DefaultConfig(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed text")
}

func TestLoadNormalization(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	ann1 := filepath.Join(dir, "doc1_ann1.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "BBDachneigungMax"))
	writeSheet(t, ann1, sheetRow("s1", "Der Satz.", "DachneigungMax"))

	corp, attrVocab, _, err := Load([]string{gold, ann1}, DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"DachneigungMax"}, attrVocab.Words())

	s, _ := corp.Get("s1")
	assert.Equal(t, []int{0}, s.Annot[0])
	assert.Equal(t, []int{0}, s.Annot[1])
}

func TestLoadIgnoredAttrs(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "NoAttribute", "N/A", "AttrA"))

	corp, attrVocab, _, err := Load([]string{gold}, DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"AttrA"}, attrVocab.Words())
	s, _ := corp.Get("s1")
	assert.Equal(t, []int{0}, s.Annot[0])
}

func TestLoadGoldOnlyAttrKeptWithZeroCount(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	ann1 := filepath.Join(dir, "doc1_ann1.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "AttrA"))
	writeSheet(t, ann1, sheetRow("s1", "Der Satz."))

	corp, _, _, err := Load([]string{gold, ann1}, DefaultConfig(), nil)
	require.NoError(t, err)

	s, _ := corp.Get("s1")
	count, present := s.AttrStats[0]
	assert.True(t, present)
	assert.Equal(t, 0, count)
}

func TestLoadMalformedName(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "doc1.xlsx")
	writeSheet(t, bad, sheetRow("s1", "Der Satz."))

	_, _, _, err := Load([]string{bad}, DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestRemoveEmpty(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	ann1 := filepath.Join(dir, "doc1_ann1.xlsx")
	writeSheet(t, gold,
		sheetRow("s1", "Der erste Satz.", "AttrA"),
		sheetRow("s2", "Der zweite Satz."),
	)
	writeSheet(t, ann1,
		sheetRow("s1", "Der erste Satz."),
		sheetRow("s2", "Der zweite Satz."),
	)

	corp, _, _, err := Load([]string{gold, ann1}, DefaultConfig(), nil)
	require.NoError(t, err)
	require.Equal(t, 2, corp.Len())

	kept := RemoveEmpty(corp)
	assert.Equal(t, 1, kept.Len())
	assert.Equal(t, []string{"s1"}, kept.Order)

	// the unfiltered corpus is untouched
	assert.Equal(t, 2, corp.Len())
}

func TestLoadProgress(t *testing.T) {
	dir := t.TempDir()
	gold := filepath.Join(dir, "doc1_gold.xlsx")
	writeSheet(t, gold, sheetRow("s1", "Der Satz.", "AttrA"))

	var calls []int
	_, _, _, err := Load([]string{gold}, DefaultConfig(), func(current, total int, name string) {
		calls = append(calls, current)
		assert.Equal(t, 1, total)
		assert.Equal(t, gold, name)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, calls)
}
