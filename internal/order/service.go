// Package order drafts, prices and submits orders against the record log.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/exporter"
	"github.com/medexy/sandelia/internal/processing"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrEmptyOrder    = errors.New("empty_order")
	ErrOrderNotFound = errors.New("order_not_found")
)

// SummaryLine is the invoice-ready projection of one priced order row.
type SummaryLine struct {
	ProductName       string  `json:"product_name"`
	Quantity          int64   `json:"quantity"`
	UnitPrice         float64 `json:"price"`
	Discount          float64 `json:"discount"`
	UnitPriceDiscount float64 `json:"price_with_discount"`
	Sum               float64 `json:"sum"`
	SumVAT            float64 `json:"sum_vat"`
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Store    *store.Store
	Exporter *exporter.Exporter
	Pipeline *processing.Pipeline
	Pricing  *config.PricingConfigHolder
}

type Service struct {
	log      *zap.Logger
	clock    clock.Clock
	store    *store.Store
	exporter *exporter.Exporter
	pipeline *processing.Pipeline
	pricing  *config.PricingConfigHolder
}

func New(p Params) *Service {
	return &Service{
		log:      p.Log.Named("order.service"),
		clock:    p.Clock,
		store:    p.Store,
		exporter: p.Exporter,
		pipeline: p.Pipeline,
		pricing:  p.Pricing,
	}
}

// NewDraft resolves the referenced manager and customer from current state
// and opens a draft. Negative-quantity order types (refills, returns) move
// goods against the warehouse itself, so they get the configured default
// customer instead of customerID.
func (s *Service) NewDraft(ctx context.Context, managerID, customerID string, byName bool, orderDate time.Time, orderType entity.OrderType) (*Draft, error) {
	managerRow, err := s.store.Get(ctx, entity.ManagerTable, managerID, false)
	if err != nil {
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, customerID, byName, orderType)
	if err != nil {
		return nil, err
	}

	return &Draft{
		Manager:   entity.ManagerFromRow(managerRow),
		Customer:  customer,
		OrderDate: orderDate,
		OrderType: orderType,
	}, nil
}

func (s *Service) resolveCustomer(ctx context.Context, customerID string, byName bool, orderType entity.OrderType) (entity.Customer, error) {
	if orderType.NegativeQuantity() {
		warehouse := s.pricing.Get().DefaultCustomer
		row, err := s.store.Get(ctx, entity.CustomerTable, warehouse, false)
		if err == nil {
			return entity.CustomerFromRow(row), nil
		}
		if !errors.Is(err, recorddomain.ErrNotFound) {
			return entity.Customer{}, err
		}
		// No seeded warehouse customer; book the movement on a synthetic one.
		return entity.Customer{
			ID:            warehouse,
			Name:          warehouse,
			Type:          entity.CustomerWholesale,
			PricingFactor: 1,
			PaymentTerms:  entity.TermsPrepaid,
		}, nil
	}

	row, err := s.store.Get(ctx, entity.CustomerTable, customerID, byName)
	if err != nil {
		return entity.Customer{}, err
	}
	return entity.CustomerFromRow(row), nil
}

// AddProduct resolves a product by name and appends it to the draft.
func (s *Service) AddProduct(ctx context.Context, draft *Draft, productName string, quantity int64, discount float64) error {
	row, err := s.store.Get(ctx, entity.ProductTable, productName, true)
	if err != nil {
		return err
	}
	draft.AddLine(Line{
		Product:  entity.ProductFromRow(row),
		Quantity: quantity,
		Discount: discount,
	})
	return nil
}

// Summary prices the draft without persisting anything.
func (s *Service) Summary(draft *Draft) ([]SummaryLine, error) {
	rows, err := s.process(draft, recorddomain.StatusInsert)
	if err != nil {
		return nil, err
	}
	return summarize(rows), nil
}

// Submit prices the draft and appends one row per line, all sharing a fresh
// order id and the submission timestamp. The draft is reset on success.
func (s *Service) Submit(ctx context.Context, draft *Draft) (string, error) {
	rows, err := s.process(draft, recorddomain.StatusInsert)
	if err != nil {
		return "", err
	}
	if err := s.exporter.Append(ctx, entity.OrderTable, rows); err != nil {
		return "", err
	}

	orderID := rows[0].String("order_id")
	s.log.Info("order submitted",
		zap.String("order_id", orderID),
		zap.Int("lines", len(rows)))
	draft.Reset()
	return orderID, nil
}

// Update appends a repriced version of an existing order under its original
// id with update status.
func (s *Service) Update(ctx context.Context, orderID string, draft *Draft) error {
	if _, err := s.Get(ctx, orderID); err != nil {
		return err
	}

	rows, err := s.process(draft, recorddomain.StatusUpdate)
	if err != nil {
		return err
	}
	for _, row := range rows {
		row["order_id"] = orderID
	}
	if err := s.exporter.Append(ctx, entity.OrderTable, rows); err != nil {
		return err
	}
	draft.Reset()
	return nil
}

// Delete appends delete markers for the newest version of the order. The
// history stays intact; a later re-submission under the same id resurrects
// the order.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	rows, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}

	timestamp := s.clock.Now().Format(recorddomain.TimestampFormat)

	markers := make([]recorddomain.Row, 0, len(rows))
	for _, row := range rows {
		marker := recorddomain.Row{}
		for k, v := range row {
			marker[k] = v
		}
		marker[recorddomain.ColumnTimestamp] = timestamp
		marker[recorddomain.ColumnStatus] = string(recorddomain.StatusDelete)
		markers = append(markers, marker)
	}
	return s.exporter.Append(ctx, entity.OrderTable, markers)
}

// Get returns the newest version of the order's line rows, or
// ErrOrderNotFound when the id is unknown or its newest version is deleted.
func (s *Service) Get(ctx context.Context, orderID string) ([]recorddomain.Row, error) {
	history, err := s.store.History(ctx, entity.OrderTable)
	if err != nil {
		return nil, err
	}

	var newest string
	for _, row := range history {
		if row.String("order_id") != orderID {
			continue
		}
		if ts := row.String(recorddomain.ColumnTimestamp); ts > newest {
			newest = ts
		}
	}
	if newest == "" {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	var batch []recorddomain.Row
	for _, row := range history {
		if row.String("order_id") == orderID && row.String(recorddomain.ColumnTimestamp) == newest {
			batch = append(batch, row)
		}
	}
	if len(batch) == 0 || batch[0].Status() == recorddomain.StatusDelete {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return batch, nil
}

// List returns the current-state order rows (one per live order id).
func (s *Service) List(ctx context.Context) ([]recorddomain.Row, error) {
	return s.store.Current(ctx, entity.OrderTable)
}

func (s *Service) process(draft *Draft, status recorddomain.Status) ([]recorddomain.Row, error) {
	entities := draft.entities()
	if len(entities) == 0 {
		return nil, ErrEmptyOrder
	}
	return s.pipeline.ForTable(entity.OrderTable).Process(entities, status)
}

func summarize(rows []recorddomain.Row) []SummaryLine {
	out := make([]SummaryLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, SummaryLine{
			ProductName:       row.String("product_name"),
			Quantity:          row.Int("quantity"),
			UnitPrice:         row.Float("price"),
			Discount:          row.Float("discount"),
			UnitPriceDiscount: row.Float("price_with_discount"),
			Sum:               row.Float("sum"),
			SumVAT:            row.Float("sum_vat"),
		})
	}
	return out
}
