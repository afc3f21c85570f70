package discount_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/medexy/sandelia/internal/discount"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/migration"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/recordlog/repository"
	"github.com/medexy/sandelia/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (*discount.Service, *gorm.DB, recorddomain.Log) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.EnsureTables(conn))

	rec := repository.Provide()
	st := store.New(store.Params{DB: conn, Log: zap.NewNop(), Rec: rec})
	svc := discount.New(discount.Params{DB: conn, Log: zap.NewNop(), Rec: rec, Store: st})
	return svc, conn, rec
}

func discountRow(id string, level entity.DiscountLevel, identifier string, percent float64, timestamp string) recorddomain.Row {
	return recorddomain.Row{
		"discount_id":         id,
		"discount_level":      string(level),
		"discount_identifier": identifier,
		"start_date":          "2024-01-01",
		"end_date":            "2024-12-31",
		"discount_percent":    percent,
		"timestamp":           timestamp,
		"status":              string(recorddomain.StatusInsert),
	}
}

func testProduct() entity.Product {
	return entity.Product{
		ID:           "p1",
		Name:         "Nitrile gloves M",
		Cost:         10,
		Category:     "consumables",
		Manufacturer: "Medgear",
	}
}

func TestActiveForProduct_SurfacesEveryMatchingLevel(t *testing.T) {
	svc, conn, rec := newService(t)
	ctx := context.Background()

	require.NoError(t, rec.Append(ctx, conn, entity.DiscountTable, []recorddomain.Row{
		discountRow("d1", entity.DiscountByCategory, "consumables", 5, "2024-03-01 10:00:00.000000"),
		discountRow("d2", entity.DiscountByManufacturer, "Medgear", 3, "2024-03-01 10:00:01.000000"),
		discountRow("d3", entity.DiscountByProductName, "Some other product", 10, "2024-03-01 10:00:02.000000"),
		discountRow("d4", entity.DiscountByCategory, "instruments", 7, "2024-03-01 10:00:03.000000"),
	}))

	matches, err := svc.ActiveForProduct(ctx, testProduct(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, matches, 2, "category and manufacturer match, name does not")
	assert.Equal(t, "d1", matches[0].ID)
	assert.Equal(t, "d2", matches[1].ID)
}

func TestActiveForProduct_OutsideValidityWindow(t *testing.T) {
	svc, conn, rec := newService(t)
	ctx := context.Background()

	require.NoError(t, rec.Append(ctx, conn, entity.DiscountTable, []recorddomain.Row{
		discountRow("d1", entity.DiscountByCategory, "consumables", 5, "2024-03-01 10:00:00.000000"),
	}))

	matches, err := svc.ActiveForProduct(ctx, testProduct(), time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestActiveForProduct_IgnoresDeletedDefinitions(t *testing.T) {
	svc, conn, rec := newService(t)
	ctx := context.Background()

	deleted := discountRow("d1", entity.DiscountByCategory, "consumables", 5, "2024-03-01 10:00:01.000000")
	deleted["status"] = string(recorddomain.StatusDelete)

	require.NoError(t, rec.Append(ctx, conn, entity.DiscountTable, []recorddomain.Row{
		discountRow("d1", entity.DiscountByCategory, "consumables", 5, "2024-03-01 10:00:00.000000"),
		deleted,
	}))

	matches, err := svc.ActiveForProduct(ctx, testProduct(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestIdentifiers_DistinctPerLevel(t *testing.T) {
	svc, conn, rec := newService(t)
	ctx := context.Background()

	productRow := func(id, name, category, manufacturer, timestamp string) recorddomain.Row {
		return recorddomain.Row{
			"product_id":       id,
			"product_name":     name,
			"cost":             1.0,
			"product_category": category,
			"manufacturer":     manufacturer,
			"timestamp":        timestamp,
			"status":           string(recorddomain.StatusInsert),
		}
	}
	require.NoError(t, rec.Append(ctx, conn, entity.ProductTable, []recorddomain.Row{
		productRow("p1", "Gauze", "consumables", "Medgear", "2024-03-01 10:00:00.000000"),
		productRow("p2", "Gloves", "consumables", "Medgear", "2024-03-01 10:00:01.000000"),
		productRow("p3", "Scalpel", "instruments", "Sharpline", "2024-03-01 10:00:02.000000"),
	}))

	categories, err := svc.Identifiers(ctx, entity.DiscountByCategory)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"consumables", "instruments"}, categories)

	names, err := svc.Identifiers(ctx, entity.DiscountByProductName)
	require.NoError(t, err)
	assert.Len(t, names, 3)
}
