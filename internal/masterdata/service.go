// Package masterdata maintains the simple entities (managers, customers,
// products, discounts) over the record log: reads resolve latest state,
// writes are appends through the processing pipeline.
package masterdata

import (
	"context"
	"errors"

	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/exporter"
	"github.com/medexy/sandelia/internal/processing"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrMissingID = errors.New("missing_entity_id")

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Store    *store.Store
	Exporter *exporter.Exporter
	Pipeline *processing.Pipeline
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	store    *store.Store
	exporter *exporter.Exporter
	pipeline *processing.Pipeline
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("masterdata.service"),
		clock:    p.Clock,
		store:    p.Store,
		exporter: p.Exporter,
		pipeline: p.Pipeline,
	}
}

// Create appends the entity as a fresh insert.
func (s *Service) Create(ctx context.Context, e entity.Entity) error {
	return s.save(ctx, e, recorddomain.StatusInsert)
}

// Update appends a new version of the entity. Latest-state reads will pick
// it up by timestamp; nothing is rewritten in place.
func (s *Service) Update(ctx context.Context, e entity.Entity) error {
	return s.save(ctx, e, recorddomain.StatusUpdate)
}

func (s *Service) save(ctx context.Context, e entity.Entity, status recorddomain.Status) error {
	table := e.Table()
	if e.Flatten().String(table.IDColumn) == "" {
		return ErrMissingID
	}

	rows, err := s.pipeline.ForTable(table).Process([]entity.Entity{e}, status)
	if err != nil {
		return err
	}
	return s.exporter.Append(ctx, table, rows)
}

// Delete appends a delete marker carrying the entity's current attributes.
// The history keeps every prior version; latest-state reads treat the key as
// absent until a newer non-delete row appears.
func (s *Service) Delete(ctx context.Context, table recorddomain.Table, id string) error {
	current, err := s.store.Get(ctx, table, id, false)
	if err != nil {
		return err
	}

	marker := recorddomain.Row{}
	for k, v := range current {
		marker[k] = v
	}
	marker[recorddomain.ColumnTimestamp] = s.clock.Now().Format(recorddomain.TimestampFormat)
	marker[recorddomain.ColumnStatus] = string(recorddomain.StatusDelete)

	return s.exporter.Append(ctx, table, []recorddomain.Row{marker})
}

// List returns the current state of the table, one row per live entity.
func (s *Service) List(ctx context.Context, table recorddomain.Table) ([]recorddomain.Row, error) {
	return s.store.Current(ctx, table)
}

// Get fetches one current-state row by id, or by the table's name column.
// Absent entities surface recordlog domain.ErrNotFound; callers decide
// whether that starts a new-entity flow.
func (s *Service) Get(ctx context.Context, table recorddomain.Table, identifier string, byName bool) (recorddomain.Row, error) {
	return s.store.Get(ctx, table, identifier, byName)
}
