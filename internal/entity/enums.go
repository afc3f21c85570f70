package entity

import "fmt"

// AccessLevel gates what a manager may do in the back office.
type AccessLevel string

const (
	AccessAdmin  AccessLevel = "admin"
	AccessUser   AccessLevel = "user"
	AccessViewer AccessLevel = "viewer"
)

// CustomerType classifies a customer and carries the default pricing factor
// applied when a customer record is created without an explicit one.
type CustomerType string

const (
	CustomerHospital  CustomerType = "hospital"
	CustomerClinic    CustomerType = "clinic"
	CustomerPharmacy  CustomerType = "pharmacy"
	CustomerWholesale CustomerType = "wholesale"
)

// DefaultPricingFactor returns the multiplier applied to product cost for
// this customer class when no per-customer factor is set.
func (t CustomerType) DefaultPricingFactor() float64 {
	switch t {
	case CustomerHospital:
		return 1.15
	case CustomerClinic:
		return 1.2
	case CustomerPharmacy:
		return 1.25
	case CustomerWholesale:
		return 1.05
	}
	return 1.0
}

// PaymentTerms carries the day count added to the order date to compute the
// payment due date.
type PaymentTerms string

const (
	TermsPrepaid PaymentTerms = "prepaid"
	TermsNet15   PaymentTerms = "net15"
	TermsNet30   PaymentTerms = "net30"
	TermsNet45   PaymentTerms = "net45"
	TermsNet60   PaymentTerms = "net60"
)

// Days returns the payment term day count.
func (p PaymentTerms) Days() int {
	switch p {
	case TermsNet15:
		return 15
	case TermsNet30:
		return 30
	case TermsNet45:
		return 45
	case TermsNet60:
		return 60
	}
	return 0
}

// ParsePaymentTerms validates a payment terms value from the wire.
func ParsePaymentTerms(s string) (PaymentTerms, error) {
	switch p := PaymentTerms(s); p {
	case TermsPrepaid, TermsNet15, TermsNet30, TermsNet45, TermsNet60:
		return p, nil
	}
	return "", fmt.Errorf("unknown payment terms %q", s)
}

// OrderType classifies an order. Stock movements that put goods back into the
// warehouse are stored with negated quantity.
type OrderType string

const (
	OrderRegular     OrderType = "regular"
	OrderReturn      OrderType = "return"
	OrderCredit      OrderType = "credit"
	OrderStockRefill OrderType = "stock refill"
)

// NegativeQuantity reports whether orders of this type decrement stock
// bookkeeping, i.e. are stored with a negated quantity.
func (t OrderType) NegativeQuantity() bool {
	return t == OrderReturn || t == OrderStockRefill
}

// ParseOrderType validates an order type value from the wire.
func ParseOrderType(s string) (OrderType, error) {
	switch t := OrderType(s); t {
	case OrderRegular, OrderReturn, OrderCredit, OrderStockRefill:
		return t, nil
	}
	return "", fmt.Errorf("unknown order type %q", s)
}

// DiscountLevel names the product attribute a discount definition matches on.
// The value doubles as the product table column holding the matched attribute.
type DiscountLevel string

const (
	DiscountByProductName  DiscountLevel = "product_name"
	DiscountByCategory     DiscountLevel = "product_category"
	DiscountByManufacturer DiscountLevel = "manufacturer"
)

// MatchColumn returns the product table column this level matches against.
func (l DiscountLevel) MatchColumn() string { return string(l) }

// DiscountLevels lists every level a single product can match simultaneously.
func DiscountLevels() []DiscountLevel {
	return []DiscountLevel{DiscountByProductName, DiscountByCategory, DiscountByManufacturer}
}

// ParseDiscountLevel validates a discount level value from the wire.
func ParseDiscountLevel(s string) (DiscountLevel, error) {
	switch l := DiscountLevel(s); l {
	case DiscountByProductName, DiscountByCategory, DiscountByManufacturer:
		return l, nil
	}
	return "", fmt.Errorf("unknown discount level %q", s)
}
