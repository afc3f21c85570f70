// Package entity defines the typed entities of the back office and their
// static table descriptors. Schemas are declared once, in code, instead of
// being derived from runtime reflection.
package entity

import (
	"time"

	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
)

// Entity is a record type whose instances flatten into record log rows.
// Flatten emits the payload attributes only; the processing pipeline stamps
// timestamp, status and any computed columns.
type Entity interface {
	Table() recorddomain.Table
	Flatten() recorddomain.Row
}

type Manager struct {
	ID       string
	Name     string
	Location string
	Access   AccessLevel
}

func (Manager) Table() recorddomain.Table { return ManagerTable }

func (m Manager) Flatten() recorddomain.Row {
	return recorddomain.Row{
		"manager_id":       m.ID,
		"manager_name":     m.Name,
		"manager_location": m.Location,
		"access":           string(m.Access),
	}
}

type Customer struct {
	ID            string
	Name          string
	Type          CustomerType
	PricingFactor float64
	Address       string
	PostCode      string
	Location      string
	Email         string
	Telephone     string
	Code          string
	VATCode       string
	PaymentTerms  PaymentTerms
}

func (Customer) Table() recorddomain.Table { return CustomerTable }

func (c Customer) Flatten() recorddomain.Row {
	factor := c.PricingFactor
	if factor == 0 {
		factor = c.Type.DefaultPricingFactor()
	}
	return recorddomain.Row{
		"customer_id":       c.ID,
		"customer_name":     c.Name,
		"customer_type":     string(c.Type),
		"pricing_factor":    factor,
		"address":           c.Address,
		"post_code":         c.PostCode,
		"customer_location": c.Location,
		"email":             c.Email,
		"telephone":         c.Telephone,
		"customer_code":     c.Code,
		"vat_code":          c.VATCode,
		"payment_terms":     string(c.PaymentTerms),
	}
}

type Product struct {
	ID           string
	Name         string
	Cost         float64
	Category     string
	Manufacturer string
}

func (Product) Table() recorddomain.Table { return ProductTable }

func (p Product) Flatten() recorddomain.Row {
	return recorddomain.Row{
		"product_id":       p.ID,
		"product_name":     p.Name,
		"cost":             p.Cost,
		"product_category": p.Category,
		"manufacturer":     p.Manufacturer,
	}
}

type Discount struct {
	ID         string
	Level      DiscountLevel
	Identifier string
	StartDate  time.Time
	EndDate    time.Time
	Percent    float64
}

func (Discount) Table() recorddomain.Table { return DiscountTable }

func (d Discount) Flatten() recorddomain.Row {
	return recorddomain.Row{
		"discount_id":         d.ID,
		"discount_level":      string(d.Level),
		"discount_identifier": d.Identifier,
		"start_date":          d.StartDate.Format(recorddomain.DateFormat),
		"end_date":            d.EndDate.Format(recorddomain.DateFormat),
		"discount_percent":    d.Percent,
	}
}

// OrderLine is one line item of an order: the referenced entities plus the
// per-line quantity and discount. Nested entities expand into the flat row
// with the parent__child prefix collapsed away, which is a no-op here because
// every nested attribute already carries its owner's name (manager_id,
// customer_name, product_category, ...).
type OrderLine struct {
	Manager   Manager
	Customer  Customer
	Product   Product
	OrderDate time.Time
	OrderType OrderType
	Quantity  int64
	Discount  float64
}

func (OrderLine) Table() recorddomain.Table { return OrderTable }

func (l OrderLine) Flatten() recorddomain.Row {
	row := recorddomain.Row{
		"order_date": l.OrderDate.Format(recorddomain.DateFormat),
		"order_type": string(l.OrderType),
		"quantity":   l.Quantity,
		"discount":   l.Discount,
	}
	for _, nested := range []recorddomain.Row{
		l.Manager.Flatten(),
		l.Customer.Flatten(),
		l.Product.Flatten(),
	} {
		for k, v := range nested {
			row[k] = v
		}
	}
	return row
}
