package memory

import (
	"context"
	"sync"

	"github.com/mcoot/yahtzee-go/internal/model"
	"github.com/mcoot/yahtzee-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	tables map[model.TableID]*model.Table
	active model.TableID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		tables: make(map[model.TableID]*model.Table),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Table operations

// SaveTable stores a copy so later changes by the caller are not visible until saved again
func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.ID] = table.Clone()
	return nil
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return nil, model.ErrTableNotFound
	}
	return table.Clone(), nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
	if s.active == id {
		s.active = ""
	}
	return nil
}

// Active table operations

func (s *Storage) SetActiveTable(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = id
	return nil
}

func (s *Storage) GetActiveTable(ctx context.Context) (model.TableID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return "", model.ErrTableNotFound
	}
	return s.active, nil
}

func (s *Storage) ClearActiveTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
	return nil
}
