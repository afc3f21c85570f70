// Package inventory derives stock levels from the order history.
package inventory

import (
	"context"

	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StockLevel is the signed running quantity for one product.
type StockLevel struct {
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
	Rec recorddomain.Log
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
	rec recorddomain.Log
}

func New(p Params) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("inventory.service"),
		rec: p.Rec,
	}
}

// StockLevels sums quantities over the raw order history, grouped by product
// name, largest stock first. Every order row is a discrete stock movement
// (refills and returns carry negated quantities), so the sum deliberately
// runs over the full history rather than latest-filtered rows.
func (s *Service) StockLevels(ctx context.Context) ([]StockLevel, error) {
	rows, err := s.rec.GroupedSum(ctx, s.db, entity.OrderTable, []string{"product_name"}, "quantity")
	if err != nil {
		return nil, err
	}

	levels := make([]StockLevel, 0, len(rows))
	for _, row := range rows {
		levels = append(levels, StockLevel{
			ProductName: row.String("product_name"),
			Quantity:    row.Int("sum_quantity"),
		})
	}
	return levels, nil
}

// StockFor returns the running stock for a single product; zero when the
// product has no movements yet.
func (s *Service) StockFor(ctx context.Context, productName string) (int64, error) {
	levels, err := s.StockLevels(ctx)
	if err != nil {
		return 0, err
	}
	for _, level := range levels {
		if level.ProductName == productName {
			return level.Quantity, nil
		}
	}
	return 0, nil
}
