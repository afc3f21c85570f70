package seed_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/migration"
	"github.com/medexy/sandelia/internal/recordlog/repository"
	"github.com/medexy/sandelia/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEnsureDemoData_SeedsOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migration.EnsureTables(conn))

	require.NoError(t, seed.EnsureDemoData(conn))

	rec := repository.Provide()
	ctx := context.Background()

	customers, err := rec.Latest(ctx, conn, entity.CustomerTable)
	require.NoError(t, err)
	assert.NotEmpty(t, customers)

	warehouse := false
	for _, row := range customers {
		if row.String("customer_id") == "WAREHOUSE" {
			warehouse = true
		}
	}
	assert.True(t, warehouse, "the warehouse self-customer must be seeded")

	products, err := rec.Latest(ctx, conn, entity.ProductTable)
	require.NoError(t, err)
	first := len(products)
	require.NotZero(t, first)

	// A rerun must not duplicate anything.
	require.NoError(t, seed.EnsureDemoData(conn))

	products, err = rec.Latest(ctx, conn, entity.ProductTable)
	require.NoError(t, err)
	assert.Len(t, products, first)
}

func TestEnsureDemoData_NilHandle(t *testing.T) {
	assert.Error(t, seed.EnsureDemoData(nil))
}
