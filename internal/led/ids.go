package led

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator mints identifiers for new records.
type IDGenerator interface {
	Next() string
}

// UUIDs generates random v4 UUIDs.
type UUIDs struct{}

func (UUIDs) Next() string { return uuid.NewString() }

// Sequence generates prefix + zero padded counter, e.g. LN-004.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	width  int
	n      int
}

func NewSequence(prefix string, width int) *Sequence {
	return &Sequence{prefix: prefix, width: width}
}

// Observe moves the counter past an existing identifier with the same prefix.
func (s *Sequence) Observe(id string) {
	rest, ok := strings.CutPrefix(id, s.prefix)
	if !ok {
		return
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return
	}
	s.mu.Lock()
	if n > s.n {
		s.n = n
	}
	s.mu.Unlock()
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	s.n++
	n := s.n
	s.mu.Unlock()
	return fmt.Sprintf("%s%0*d", s.prefix, s.width, n)
}
