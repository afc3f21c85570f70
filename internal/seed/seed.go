// Package seed bootstraps a demo dataset for local development.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/recordlog/repository"
	"gorm.io/gorm"
)

// EnsureDemoData appends a starter dataset once: a manager, the warehouse
// self-customer, a couple of clinics, a small catalog and one seasonal
// discount. Reruns are no-ops when the manager table already has rows.
func EnsureDemoData(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rec := repository.Provide()

	existing, err := rec.All(ctx, conn, entity.ManagerTable)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	stamp := now.Format(recorddomain.TimestampFormat)

	seedEntities := []struct {
		table recorddomain.Table
		items []entity.Entity
	}{
		{entity.ManagerTable, []entity.Entity{
			entity.Manager{ID: "vilte@medexy.lt", Name: "Viltė Petrauskaitė", Location: "Vilnius", Access: entity.AccessAdmin},
		}},
		{entity.CustomerTable, []entity.Entity{
			entity.Customer{ID: "WAREHOUSE", Name: "WAREHOUSE", Type: entity.CustomerWholesale, PricingFactor: 1, PaymentTerms: entity.TermsPrepaid},
			entity.Customer{ID: node.Generate().String(), Name: "Santaros klinikos", Type: entity.CustomerHospital, PricingFactor: 1.15, Address: "Santariškių g. 2", PostCode: "08661", Location: "Vilnius", Email: "pirkimai@santa.lt", Telephone: "+37052365000", Code: "124364561", VATCode: "LT243645610", PaymentTerms: entity.TermsNet45},
			entity.Customer{ID: node.Generate().String(), Name: "Kauno klinikos", Type: entity.CustomerHospital, PricingFactor: 1.2, Address: "Eivenių g. 2", PostCode: "50161", Location: "Kaunas", Email: "pirkimai@kaunoklinikos.lt", Telephone: "+37037326264", Code: "135163499", VATCode: "LT351634917", PaymentTerms: entity.TermsNet60},
		}},
		{entity.ProductTable, []entity.Entity{
			entity.Product{ID: node.Generate().String(), Name: "Nitrile gloves M", Cost: 4.9, Category: "protective equipment", Manufacturer: "Medigrip"},
			entity.Product{ID: node.Generate().String(), Name: "Surgical mask type IIR", Cost: 7.5, Category: "protective equipment", Manufacturer: "Sanimed"},
			entity.Product{ID: node.Generate().String(), Name: "Infusion set", Cost: 12.3, Category: "infusion", Manufacturer: "Medigrip"},
		}},
		{entity.DiscountTable, []entity.Entity{
			entity.Discount{ID: node.Generate().String(), Level: entity.DiscountByCategory, Identifier: "protective equipment", StartDate: now.AddDate(0, -1, 0), EndDate: now.AddDate(0, 2, 0), Percent: 5},
		}},
	}

	for _, s := range seedEntities {
		rows := make([]recorddomain.Row, 0, len(s.items))
		for _, item := range s.items {
			row := item.Flatten()
			row[recorddomain.ColumnTimestamp] = stamp
			row[recorddomain.ColumnStatus] = string(recorddomain.StatusInsert)
			rows = append(rows, row)
		}
		if err := rec.Append(ctx, conn, s.table, rows); err != nil {
			return err
		}
	}
	return nil
}
