package processing

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type orderStrategy struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	pricing *config.PricingConfigHolder
}

// Process serializes a batch of order lines into one order: every row gets
// the same freshly generated order id and submission timestamp, then the
// pricing columns are derived line by line.
//
// The sign flip for negative-quantity order types is decided once, from the
// first line's order type. A batch mixing order types is priced consistently
// under that first type rather than per line; mixed batches are a caller
// mistake this pipeline resolves deterministically instead of rejecting.
func (s *orderStrategy) Process(entities []entity.Entity, status recorddomain.Status) ([]recorddomain.Row, error) {
	if len(entities) == 0 {
		return nil, ErrEmptyBatch
	}

	lines := make([]entity.OrderLine, 0, len(entities))
	for _, e := range entities {
		line, ok := e.(entity.OrderLine)
		if !ok {
			return nil, fmt.Errorf("order strategy got %T, want entity.OrderLine", e)
		}
		lines = append(lines, line)
	}

	cfg := s.pricing.Get()
	orderID := s.genID.Generate().String()
	stamp := s.clock.Now().Format(recorddomain.TimestampFormat)
	negative := lines[0].OrderType.NegativeQuantity()

	if mixed := mixedOrderTypes(lines); mixed {
		s.log.Warn("order batch mixes order types, first line wins",
			zap.String("order_id", orderID),
			zap.String("order_type", string(lines[0].OrderType)))
	}

	rows := make([]recorddomain.Row, 0, len(lines))
	for _, line := range lines {
		row := line.Flatten()
		row["order_id"] = orderID
		row[recorddomain.ColumnTimestamp] = stamp
		row[recorddomain.ColumnStatus] = string(status)

		quantity := line.Quantity
		if negative {
			quantity = -quantity
		}
		row["quantity"] = quantity

		if err := s.addOrderAmounts(row, cfg, quantity); err != nil {
			return nil, err
		}
		if err := addPaymentDue(row, line); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func mixedOrderTypes(lines []entity.OrderLine) bool {
	for _, line := range lines[1:] {
		if line.OrderType != lines[0].OrderType {
			return true
		}
	}
	return false
}

// addOrderAmounts derives the money columns. Unit-level prices keep
// UnitScale decimals; the line sums are rounded (half away from zero, which
// is half-up for positive amounts) to SumScale only at the very end, so
// sum_vat is quantity times the unit VAT price, not times a pre-rounded one.
func (s *orderStrategy) addOrderAmounts(row recorddomain.Row, cfg config.PricingConfig, quantity int64) error {
	cost := decimal.NewFromFloat(row.Float("cost"))
	factor := decimal.NewFromFloat(row.Float("pricing_factor"))
	discountPct := decimal.NewFromFloat(row.Float("discount"))
	vat := decimal.NewFromFloat(cfg.VATFactor)
	qty := decimal.NewFromInt(quantity)

	price := cost.Mul(factor).Round(cfg.UnitScale)
	discountAmount := price.Mul(discountPct).Div(decimal.NewFromInt(100)).Round(cfg.UnitScale)
	priceWithDiscount := price.Sub(discountAmount)
	priceWithVAT := price.Mul(vat).Round(cfg.UnitScale)
	priceWithDiscountVAT := priceWithDiscount.Mul(vat).Round(cfg.UnitScale)
	sum := priceWithDiscount.Mul(qty).Round(cfg.SumScale)
	sumVAT := priceWithDiscountVAT.Mul(qty).Round(cfg.SumScale)

	row["price"] = price.InexactFloat64()
	row["discount_amount"] = discountAmount.InexactFloat64()
	row["price_with_vat"] = priceWithVAT.InexactFloat64()
	row["price_with_discount"] = priceWithDiscount.InexactFloat64()
	row["price_with_discount_vat"] = priceWithDiscountVAT.InexactFloat64()
	row["sum"] = sum.InexactFloat64()
	row["sum_vat"] = sumVAT.InexactFloat64()
	return nil
}

func addPaymentDue(row recorddomain.Row, line entity.OrderLine) error {
	terms, err := entity.ParsePaymentTerms(row.String("payment_terms"))
	if err != nil {
		return fmt.Errorf("order line for customer %s: %w", line.Customer.ID, err)
	}
	due := line.OrderDate.AddDate(0, 0, terms.Days())
	row["payment_due"] = due.Format(recorddomain.DateFormat)
	return nil
}
