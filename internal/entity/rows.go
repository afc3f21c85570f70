package entity

import (
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
)

// Hydration back from flat rows, used when a stored entity feeds a new
// operation (order drafting references current managers, customers and
// products).

func ManagerFromRow(row recorddomain.Row) Manager {
	return Manager{
		ID:       row.String("manager_id"),
		Name:     row.String("manager_name"),
		Location: row.String("manager_location"),
		Access:   AccessLevel(row.String("access")),
	}
}

func CustomerFromRow(row recorddomain.Row) Customer {
	return Customer{
		ID:            row.String("customer_id"),
		Name:          row.String("customer_name"),
		Type:          CustomerType(row.String("customer_type")),
		PricingFactor: row.Float("pricing_factor"),
		Address:       row.String("address"),
		PostCode:      row.String("post_code"),
		Location:      row.String("customer_location"),
		Email:         row.String("email"),
		Telephone:     row.String("telephone"),
		Code:          row.String("customer_code"),
		VATCode:       row.String("vat_code"),
		PaymentTerms:  PaymentTerms(row.String("payment_terms")),
	}
}

func ProductFromRow(row recorddomain.Row) Product {
	return Product{
		ID:           row.String("product_id"),
		Name:         row.String("product_name"),
		Cost:         row.Float("cost"),
		Category:     row.String("product_category"),
		Manufacturer: row.String("manufacturer"),
	}
}

func DiscountFromRow(row recorddomain.Row) (Discount, error) {
	start, err := row.Date("start_date")
	if err != nil {
		return Discount{}, err
	}
	end, err := row.Date("end_date")
	if err != nil {
		return Discount{}, err
	}
	return Discount{
		ID:         row.String("discount_id"),
		Level:      DiscountLevel(row.String("discount_level")),
		Identifier: row.String("discount_identifier"),
		StartDate:  start,
		EndDate:    end,
		Percent:    row.Float("discount_percent"),
	}, nil
}
