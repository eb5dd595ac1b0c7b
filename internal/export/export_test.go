package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/circulation"
	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store/memory"
)

func newExporter() (*Exporter, *catalog.Service) {
	st := memory.New(true)
	cat := catalog.New(st, nil)
	return New(cat, circulation.New(st, nil, nil)), cat
}

func TestBooksExportReflectsCurrentState(t *testing.T) {
	e, cat := newExporter()
	title := "Dune, Part One"
	a, c := "4", "3"
	if _, err := cat.CreateBook(t.Context(), models.BookDraft{Title: &title, AuthorID: &a, CategoryID: &c}); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}

	var buf bytes.Buffer
	n, err := e.Write(t.Context(), Books, &buf)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 10 {
		t.Fatalf("rows = %d, want 10", n)
	}

	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	if got := strings.Join(recs[0], ","); got != "ID,Title,Author,ISBN" {
		t.Fatalf("header = %q", got)
	}
	last := recs[len(recs)-1]
	if last[1] != title || last[2] != "Isaac Asimov" {
		t.Fatalf("last row = %v", last)
	}
}

func TestReadersExport(t *testing.T) {
	e, _ := newExporter()
	var buf bytes.Buffer
	if _, err := e.Write(t.Context(), Readers, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "ID,Name,Email,Phone" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1,Nguyen Van A,nguyenvana@example.com,0912345678" {
		t.Fatalf("first row = %q", lines[1])
	}
}

func TestUnknownKind(t *testing.T) {
	e, _ := newExporter()
	_, err := e.Write(t.Context(), "loans", &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(Books, models.MustDate("2024-03-10")); got != "books_backup_2024-03-10.csv" {
		t.Fatalf("Filename = %q", got)
	}
}
