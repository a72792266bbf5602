package zombiezen

import (
	"context"
	"strings"

	"github.com/plandok/annagree/sentence"
	"github.com/plandok/annagree/storage"
	"github.com/plandok/annagree/vocab"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type ReportHandler struct {
	pool *sqlitex.Pool
}

var _ storage.ReportWriter = (*ReportHandler)(nil)

func NewReportHandler(pool *sqlitex.Pool) *ReportHandler {
	return &ReportHandler{pool: pool}
}

// WriteReport persists the full corpus in one transaction. Attribute sets
// are stored as comma-joined names, empty selections as the empty string.
// The error return is named so a failure while releasing the savepoint
// still reaches the caller.
func (h *ReportHandler) WriteReport(corp *sentence.Corpus, attrVocab, annVocab *vocab.Vocabulary) (err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	attrNames := attrVocab.Words()
	annNames := annVocab.Words()

	for annID, name := range annNames {
		err = sqlitex.Execute(conn, "INSERT OR IGNORE INTO annotators (id, name) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{annID, name},
		})
		if err != nil {
			return err
		}
	}

	for _, s := range corp.Sentences() {
		s.ComputeFullAgreement()
		err = sqlitex.Execute(conn, "INSERT INTO sentences (id, text, full_agreement) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{s.ID, s.Text, s.FullAgreement},
		})
		if err != nil {
			return err
		}

		for annID := range annNames {
			attrs, ok := s.Annot[annID]
			if !ok {
				continue
			}
			names := make([]string, len(attrs))
			for i, attr := range attrs {
				names[i] = attrNames[attr]
			}
			err = sqlitex.Execute(conn, "INSERT INTO annotations (sentence_id, annotator_id, attrs) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{s.ID, annID, strings.Join(names, ",")},
			})
			if err != nil {
				return err
			}
		}
	}

	return err
}

// Annotations returns the stored attribute names per annotator for one
// sentence.
func (h *ReportHandler) Annotations(senID string) (map[string][]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	annots := map[string][]string{}
	err = sqlitex.Execute(conn, "SELECT a.name, n.attrs FROM annotations n JOIN annotators a ON a.id = n.annotator_id WHERE n.sentence_id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{senID},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			attrsStr := stmt.ColumnText(1)
			var attrs []string
			if attrsStr != "" {
				attrs = strings.Split(attrsStr, ",")
			}
			annots[stmt.ColumnText(0)] = attrs
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return annots, nil
}
