// Package export writes CSV backups of the current catalog and reader list.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

const (
	Books   = "books"
	Readers = "readers"
)

var ErrUnknownKind = errors.New("unknown export type")

type Exporter struct {
	catalog     *catalog.Service
	circulation *circulation.Service
}

func New(cat *catalog.Service, circ *circulation.Service) *Exporter {
	return &Exporter{catalog: cat, circulation: circ}
}

// Filename is the download name, e.g. books_backup_2024-03-10.csv.
func Filename(kind string, day models.Date) string {
	return fmt.Sprintf("%s_backup_%s.csv", kind, day)
}

// Write streams the CSV for kind and returns the number of data rows.
func (e *Exporter) Write(ctx context.Context, kind string, w io.Writer) (int, error) {
	var (
		header []string
		rows   [][]string
	)
	switch kind {
	case Books:
		books, err := e.catalog.ListBooks(ctx, store.Query{})
		if err != nil {
			return 0, err
		}
		header = []string{"ID", "Title", "Author", "ISBN"}
		for _, b := range books {
			rows = append(rows, []string{b.ID, b.Title, b.AuthorName, b.ISBN})
		}
	case Readers:
		readers, err := e.circulation.ListReaders(ctx, store.Query{})
		if err != nil {
			return 0, err
		}
		header = []string{"ID", "Name", "Email", "Phone"}
		for _, r := range readers {
			rows = append(rows, []string{r.ID, r.Name, r.Email, r.Phone})
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return 0, err
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
