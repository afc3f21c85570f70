package order_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medexy/sandelia/internal/clock"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/exporter"
	"github.com/medexy/sandelia/internal/migration"
	"github.com/medexy/sandelia/internal/order"
	"github.com/medexy/sandelia/internal/processing"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/recordlog/repository"
	"github.com/medexy/sandelia/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  *order.Service
	st   *store.Store
	exp  *exporter.Exporter
	pipe *processing.Pipeline
	fake *clock.FakeClock
	conn *gorm.DB
	rec  recorddomain.Log
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.EnsureTables(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	pricing := config.NewStaticPricingConfigHolder(config.DefaultPricingConfig())
	rec := repository.Provide()
	st := store.New(store.Params{DB: conn, Log: zap.NewNop(), Rec: rec})
	exp := exporter.New(exporter.Params{DB: conn, Log: zap.NewNop(), Rec: rec, Store: st, Clock: fake})
	pipe := processing.New(processing.Params{Log: zap.NewNop(), GenID: node, Clock: fake, Pricing: pricing})
	svc := order.New(order.Params{
		Log:      zap.NewNop(),
		Clock:    fake,
		Store:    st,
		Exporter: exp,
		Pipeline: pipe,
		Pricing:  pricing,
	})

	f := &fixture{svc: svc, st: st, exp: exp, pipe: pipe, fake: fake, conn: conn, rec: rec}
	f.seedMasterData(t)
	return f
}

func (f *fixture) seedMasterData(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	stamp := f.fake.Now().Format(recorddomain.TimestampFormat)
	seed := func(table recorddomain.Table, items ...entity.Entity) {
		rows := make([]recorddomain.Row, 0, len(items))
		for _, item := range items {
			row := item.Flatten()
			row[recorddomain.ColumnTimestamp] = stamp
			row[recorddomain.ColumnStatus] = string(recorddomain.StatusInsert)
			rows = append(rows, row)
		}
		require.NoError(t, f.exp.Append(ctx, table, rows))
	}

	seed(entity.ManagerTable,
		entity.Manager{ID: "m1", Name: "Ona", Location: "Vilnius", Access: entity.AccessUser})
	seed(entity.CustomerTable,
		entity.Customer{
			ID: "c1", Name: "Santaros klinikos",
			Type: entity.CustomerHospital, PricingFactor: 1.2,
			PaymentTerms: entity.TermsNet45,
		},
		entity.Customer{
			ID: "WAREHOUSE", Name: "WAREHOUSE",
			Type: entity.CustomerWholesale, PricingFactor: 1,
			PaymentTerms: entity.TermsPrepaid,
		})
	seed(entity.ProductTable,
		entity.Product{ID: "p1", Name: "Nitrile gloves M", Cost: 10, Category: "consumables", Manufacturer: "Medgear"},
		entity.Product{ID: "p2", Name: "Gauze", Cost: 2.5, Category: "consumables", Manufacturer: "Medgear"})
	f.fake.Advance(time.Second)
}

func (f *fixture) draft(t *testing.T) *order.Draft {
	t.Helper()
	draft, err := f.svc.NewDraft(context.Background(), "m1", "c1", false,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), entity.OrderRegular)
	require.NoError(t, err)
	return draft
}

func TestSummary_PricesWithoutPersisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Nitrile gloves M", 5, 10))

	summary, err := f.svc.Summary(draft)
	require.NoError(t, err)
	require.Len(t, summary, 1)

	line := summary[0]
	assert.Equal(t, "Nitrile gloves M", line.ProductName)
	assert.Equal(t, int64(5), line.Quantity)
	assert.InDelta(t, 12.00, line.UnitPrice, 1e-9)
	assert.InDelta(t, 10.80, line.UnitPriceDiscount, 1e-9)
	assert.InDelta(t, 54.00, line.Sum, 1e-9)
	assert.InDelta(t, 65.34, line.SumVAT, 1e-9)

	// Nothing persisted, the draft is still open.
	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Len(t, draft.Lines(), 1)
}

func TestSubmit_PersistsAndResetsDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Nitrile gloves M", 5, 10))
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Gauze", 20, 0))

	orderID, err := f.svc.Submit(ctx, draft)
	require.NoError(t, err)
	require.NotEmpty(t, orderID)
	assert.Empty(t, draft.Lines())

	rows, err := f.svc.Get(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, orderID, row.String("order_id"))
		assert.Equal(t, "2024-07-16", row.String("payment_due"))
	}
}

func TestSubmit_EmptyDraft(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), f.draft(t))
	assert.ErrorIs(t, err, order.ErrEmptyOrder)
}

func TestNewDraft_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.NewDraft(ctx, "m9", "c1", false, date, entity.OrderRegular)
	assert.ErrorIs(t, err, recorddomain.ErrNotFound)

	_, err = f.svc.NewDraft(ctx, "m1", "c9", false, date, entity.OrderRegular)
	assert.ErrorIs(t, err, recorddomain.ErrNotFound)
}

func TestNewDraft_RefillBooksAgainstWarehouse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.svc.NewDraft(ctx, "m1", "c1", false,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), entity.OrderStockRefill)
	require.NoError(t, err)
	assert.Equal(t, "WAREHOUSE", draft.Customer.ID)

	require.NoError(t, f.svc.AddProduct(ctx, draft, "Gauze", 100, 0))
	orderID, err := f.svc.Submit(ctx, draft)
	require.NoError(t, err)

	rows, err := f.svc.Get(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-100), rows[0].Int("quantity"))
	assert.Equal(t, "WAREHOUSE", rows[0].String("customer_name"))
}

func TestUpdate_RepricesUnderOriginalID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Nitrile gloves M", 5, 10))
	orderID, err := f.svc.Submit(ctx, draft)
	require.NoError(t, err)
	f.fake.Advance(time.Second)

	redraft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, redraft, "Nitrile gloves M", 8, 0))
	require.NoError(t, f.svc.Update(ctx, orderID, redraft))

	rows, err := f.svc.Get(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(8), rows[0].Int("quantity"))
	assert.Equal(t, recorddomain.StatusUpdate, rows[0].Status())

	// Both versions remain in the history.
	history, err := f.st.History(ctx, entity.OrderTable)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestUpdate_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Gauze", 1, 0))

	err := f.svc.Update(ctx, "does-not-exist", draft)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestDelete_MarksNewestVersionAndKeepsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Nitrile gloves M", 5, 10))
	require.NoError(t, f.svc.AddProduct(ctx, draft, "Gauze", 20, 0))
	orderID, err := f.svc.Submit(ctx, draft)
	require.NoError(t, err)
	f.fake.Advance(time.Second)

	require.NoError(t, f.svc.Delete(ctx, orderID))

	_, err = f.svc.Get(ctx, orderID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	history, err := f.st.History(ctx, entity.OrderTable)
	require.NoError(t, err)
	assert.Len(t, history, 4, "two line rows plus two delete markers")
}

func TestList_OneRowPerLiveOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, first, "Gauze", 1, 0))
	_, err := f.svc.Submit(ctx, first)
	require.NoError(t, err)
	f.fake.Advance(time.Second)

	second := f.draft(t)
	require.NoError(t, f.svc.AddProduct(ctx, second, "Nitrile gloves M", 2, 0))
	_, err = f.svc.Submit(ctx, second)
	require.NoError(t, err)

	orders, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
