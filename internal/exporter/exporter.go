// Package exporter appends processed rows to the record log and serves the
// CSV interchange format.
package exporter

import (
	"context"
	"os"
	"path/filepath"

	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Rec   recorddomain.Log
	Store *store.Store
	Clock clock.Clock
	Cfg   config.Config
}

type Exporter struct {
	db    *gorm.DB
	log   *zap.Logger
	rec   recorddomain.Log
	store *store.Store
	clock clock.Clock
	dir   string
}

func New(p Params) *Exporter {
	return &Exporter{
		db:    p.DB,
		log:   p.Log.Named("exporter"),
		rec:   p.Rec,
		store: p.Store,
		clock: p.Clock,
		dir:   p.Cfg.ExportDir,
	}
}

// Append writes the processed rows to the table and re-reads its snapshot so
// callers observe the new state on the next render. The row set must match
// the table schema exactly; the record log rejects anything else without
// landing a partial batch.
func (e *Exporter) Append(ctx context.Context, table recorddomain.Table, rows []recorddomain.Row) error {
	if err := e.rec.Append(ctx, e.db, table, rows); err != nil {
		return err
	}

	e.store.Invalidate(table.Name)
	if _, err := e.store.Current(ctx, table); err != nil {
		return err
	}

	if e.dir != "" {
		if err := e.mirrorCSV(table, rows); err != nil {
			// The database append already landed; a mirror failure must not
			// fail the operation.
			e.log.Warn("csv mirror append failed",
				zap.String("table", table.Name),
				zap.Error(err))
		}
	}

	e.log.Info("rows appended",
		zap.String("table", table.Name),
		zap.Int("rows", len(rows)))
	return nil
}

// mirrorCSV appends the rows to the day's interchange file under the export
// directory. A fresh file starts with the header line; appends go without one.
func (e *Exporter) mirrorCSV(table recorddomain.Table, rows []recorddomain.Row) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(e.dir, Filename(table, e.clock.Now()))
	_, statErr := os.Stat(path)
	header := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteCSV(f, table, rows, header)
}
