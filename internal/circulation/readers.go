package circulation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/5w1tchy/library-admin/internal/models"
	"github.com/5w1tchy/library-admin/internal/store"
)

func (s *Service) ListReaders(ctx context.Context, q store.Query) ([]models.ReaderView, error) {
	readers, err := s.readers.List(ctx, q)
	if err != nil {
		return nil, err
	}
	loans, err := s.allLoans(ctx)
	if err != nil {
		return nil, err
	}
	counts := countByReader(loans)
	out := make([]models.ReaderView, 0, len(readers))
	for _, r := range readers {
		c := counts[r.ID]
		out = append(out, models.ReaderView{Reader: r, ActiveLoans: c.open, TotalLoans: c.total})
	}
	return out, nil
}

func (s *Service) GetReader(ctx context.Context, id string) (models.ReaderView, error) {
	r, err := s.readers.Get(ctx, id)
	if err != nil {
		return models.ReaderView{}, err
	}
	return s.readerView(ctx, r)
}

func (s *Service) readerView(ctx context.Context, r models.Reader) (models.ReaderView, error) {
	loans, err := s.allLoans(ctx)
	if err != nil {
		return models.ReaderView{}, err
	}
	c := countByReader(loans)[r.ID]
	return models.ReaderView{Reader: r, ActiveLoans: c.open, TotalLoans: c.total}, nil
}

// CreateReader fills a blank card id with RD-<year><seq> and starts the reader as Active today.
func (s *Service) CreateReader(ctx context.Context, d models.ReaderDraft) (models.ReaderView, error) {
	if err := d.Validate(true); err != nil {
		return models.ReaderView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.CardID == nil || *d.CardID == "" {
		card, err := s.nextCardID(ctx)
		if err != nil {
			return models.ReaderView{}, err
		}
		d.CardID = &card
	} else if err := s.checkCardFree(ctx, *d.CardID, ""); err != nil {
		return models.ReaderView{}, err
	}
	r, err := s.readers.Create(ctx, models.NewReader(s.Today()), d)
	if err != nil {
		return models.ReaderView{}, err
	}
	s.rec.Record(ctx, models.ActionCreateReader, fmt.Sprintf("Registered reader %s (%s)", r.Name, r.CardID))
	return models.ReaderView{Reader: r}, nil
}

// checkCardFree rejects a card id held by any reader other than selfID.
func (s *Service) checkCardFree(ctx context.Context, card, selfID string) error {
	readers, err := s.readers.List(ctx, store.Query{})
	if err != nil {
		return err
	}
	for _, r := range readers {
		if r.CardID == card && r.ID != selfID {
			return ErrCardIDTaken
		}
	}
	return nil
}

func (s *Service) nextCardID(ctx context.Context) (string, error) {
	readers, err := s.readers.List(ctx, store.Query{})
	if err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("RD-%d", s.now().Year())
	taken := make(map[string]bool, len(readers))
	seq := 0
	for _, r := range readers {
		taken[r.CardID] = true
		if rest, ok := strings.CutPrefix(r.CardID, prefix); ok {
			if n, err := strconv.Atoi(rest); err == nil && n > seq {
				seq = n
			}
		}
	}
	for {
		seq++
		card := fmt.Sprintf("%s%03d", prefix, seq)
		if !taken[card] {
			return card, nil
		}
	}
}

func (s *Service) UpdateReader(ctx context.Context, id string, d models.ReaderDraft) (models.ReaderView, error) {
	if err := d.Validate(false); err != nil {
		return models.ReaderView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.CardID != nil && *d.CardID != "" {
		if err := s.checkCardFree(ctx, *d.CardID, id); err != nil {
			return models.ReaderView{}, err
		}
	}
	r, err := s.readers.Update(ctx, id, d)
	if err != nil {
		return models.ReaderView{}, err
	}
	s.rec.Record(ctx, models.ActionUpdateReader, fmt.Sprintf("Updated reader %s", r.Name))
	return s.readerView(ctx, r)
}

// DeleteReader refuses readers that still have books out.
func (s *Service) DeleteReader(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loans, err := s.allLoans(ctx)
	if err != nil {
		return err
	}
	counts := countByReader(loans)
	var name string
	err = s.readers.Delete(ctx, id, func(r models.Reader) error {
		if counts[r.ID].open > 0 {
			return ErrReaderHasActiveLoans
		}
		name = r.Name
		return nil
	})
	if err != nil {
		return err
	}
	s.rec.Record(ctx, models.ActionDeleteReader, fmt.Sprintf("Deleted reader %s", name))
	return nil
}
