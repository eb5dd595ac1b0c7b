package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/library-admin/internal/catalog"
	"github.com/5w1tchy/library-admin/internal/store/memory"
)

func TestBooks(t *testing.T) {
	s := New(catalog.New(memory.New(true), nil))

	cases := []struct {
		q      string
		titles []string
	}{
		{"1984", []string{"1984"}},
		{"orwell", []string{"1984"}},
		{"TECHNOLOGY", []string{"Clean Code", "The Pragmatic Programmer"}},
		{"hobbit", []string{"The Hobbit"}},
		{"nothing matches this", []string{}},
	}
	for _, c := range cases {
		t.Run(c.q, func(t *testing.T) {
			got, err := s.Books(t.Context(), c.q)
			require.NoError(t, err)
			titles := []string{}
			for _, b := range got {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, c.titles, titles)
		})
	}
}

func TestEmptyQueryReturnsAll(t *testing.T) {
	s := New(catalog.New(memory.New(true), nil))
	got, err := s.Books(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, got, 9)
}
