// Package discount resolves which discount definitions apply to a product on
// a given date.
package discount

import (
	"context"
	"time"

	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/store"
	"github.com/samber/lo"
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
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	rec   recorddomain.Log
	store *store.Store
}

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("discount.service"),
		rec:   p.Rec,
		store: p.Store,
	}
}

// ActiveForProduct returns every discount definition whose validity window
// contains date and whose (level, identifier) matches the product at that
// level. A product can match at up to three levels at once (its name, its
// category, its manufacturer); all matches are surfaced, not just the first.
func (s *Service) ActiveForProduct(ctx context.Context, product entity.Product, date time.Time) ([]entity.Discount, error) {
	valid, err := s.activeAt(ctx, date)
	if err != nil {
		return nil, err
	}

	attr := map[entity.DiscountLevel]string{
		entity.DiscountByProductName:  product.Name,
		entity.DiscountByCategory:     product.Category,
		entity.DiscountByManufacturer: product.Manufacturer,
	}

	matches := make([]entity.Discount, 0, len(valid))
	for _, level := range entity.DiscountLevels() {
		for _, d := range valid {
			if d.Level == level && d.Identifier == attr[level] {
				matches = append(matches, d)
			}
		}
	}
	return matches, nil
}

func (s *Service) activeAt(ctx context.Context, date time.Time) ([]entity.Discount, error) {
	rows, err := s.rec.ValidAt(ctx, s.db, entity.DiscountTable,
		"start_date", "end_date", date.Format(recorddomain.DateFormat))
	if err != nil {
		return nil, err
	}

	discounts := make([]entity.Discount, 0, len(rows))
	for _, row := range rows {
		d, err := entity.DiscountFromRow(row)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}

// Identifiers enumerates the distinct values a discount can target at the
// given level, derived from the current product catalog.
func (s *Service) Identifiers(ctx context.Context, level entity.DiscountLevel) ([]string, error) {
	products, err := s.store.Current(ctx, entity.ProductTable)
	if err != nil {
		return nil, err
	}
	values := lo.Map(products, func(row recorddomain.Row, _ int) string {
		return row.String(level.MatchColumn())
	})
	return lo.Uniq(values), nil
}
