package memory

import (
	"context"
	"sync"

	"github.com/5w1tchy/library-admin/internal/models"
)

type Settings struct {
	mu sync.RWMutex
	s  models.Settings
}

func NewSettings(s models.Settings) *Settings { return &Settings{s: s} }

func (m *Settings) GetSettings(context.Context) (models.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s, nil
}

func (m *Settings) PutSettings(_ context.Context, s models.Settings) error {
	m.mu.Lock()
	m.s = s
	m.mu.Unlock()
	return nil
}
