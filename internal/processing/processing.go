// Package processing turns entities into record log rows. Two strategies
// exist: the default one flattens and stamps, the order one additionally
// derives pricing, VAT and payment-due columns for a batch of order lines.
package processing

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrEmptyBatch = errors.New("empty_entity_batch")

// Strategy serializes a batch of entities into stamped rows ready for the
// record log. Every row of one call shares the same timestamp.
type Strategy interface {
	Process(entities []entity.Entity, status recorddomain.Status) ([]recorddomain.Row, error)
}

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Pricing *config.PricingConfigHolder
}

// Pipeline selects the processing strategy per table at construction time.
type Pipeline struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	pricing *config.PricingConfigHolder
}

func New(p Params) *Pipeline {
	return &Pipeline{
		log:     p.Log.Named("processing"),
		genID:   p.GenID,
		clock:   p.Clock,
		pricing: p.Pricing,
	}
}

// ForTable returns the strategy that serializes entities of the given table.
func (p *Pipeline) ForTable(table recorddomain.Table) Strategy {
	if table.Name == entity.OrderTable.Name {
		return &orderStrategy{
			log:     p.log.Named("order"),
			genID:   p.genID,
			clock:   p.clock,
			pricing: p.pricing,
		}
	}
	return &defaultStrategy{clock: p.clock}
}

type defaultStrategy struct {
	clock clock.Clock
}

func (s *defaultStrategy) Process(entities []entity.Entity, status recorddomain.Status) ([]recorddomain.Row, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyBatch
	}
	stamp := s.clock.Now().Format(recorddomain.TimestampFormat)
	rows := make([]recorddomain.Row, 0, len(entities))
	for _, e := range entities {
		row := e.Flatten()
		row[recorddomain.ColumnTimestamp] = stamp
		row[recorddomain.ColumnStatus] = string(status)
		rows = append(rows, row)
	}
	return rows, nil
}
