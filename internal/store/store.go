// Package store keeps per-table snapshots of current entity state. Tables
// are always loaded wholesale; an append invalidates only the affected
// table's snapshot.
package store

import (
	"context"
	"fmt"
	"sync"

	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
	Rec recorddomain.Log
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
	rec recorddomain.Log

	mu      sync.RWMutex
	current map[string][]recorddomain.Row
}

func New(p Params) *Store {
	return &Store{
		db:      p.DB,
		log:     p.Log.Named("store"),
		rec:     p.Rec,
		current: make(map[string][]recorddomain.Row),
	}
}

// Current returns the latest state of the table, loading and caching it on
// first use after an invalidation.
func (s *Store) Current(ctx context.Context, table recorddomain.Table) ([]recorddomain.Row, error) {
	s.mu.RLock()
	rows, ok := s.current[table.Name]
	s.mu.RUnlock()
	if ok {
		return rows, nil
	}

	rows, err := s.rec.Latest(ctx, s.db, table)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current[table.Name] = rows
	s.mu.Unlock()

	s.log.Debug("table snapshot refreshed",
		zap.String("table", table.Name),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// History loads the full append-only history of the table, uncached.
func (s *Store) History(ctx context.Context, table recorddomain.Table) ([]recorddomain.Row, error) {
	return s.rec.All(ctx, s.db, table)
}

// Invalidate drops the cached snapshot for one table.
func (s *Store) Invalidate(tableName string) {
	s.mu.Lock()
	delete(s.current, tableName)
	s.mu.Unlock()
}

// Get looks up a single current-state row by the table's id column, or by
// its name column when byName is set.
func (s *Store) Get(ctx context.Context, table recorddomain.Table, identifier string, byName bool) (recorddomain.Row, error) {
	column := table.IDColumn
	if byName {
		if table.NameColumn == "" {
			return nil, fmt.Errorf("table %s has no name column", table.Name)
		}
		column = table.NameColumn
	}

	rows, err := s.Current(ctx, table)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.String(column) == identifier {
			return row, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s=%s", recorddomain.ErrNotFound, table.Name, column, identifier)
}
