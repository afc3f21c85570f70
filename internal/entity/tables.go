package entity

import (
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
)

// Bookkeeping columns closing every schema.
var stampColumns = []recorddomain.Column{
	{Name: recorddomain.ColumnTimestamp, Kind: recorddomain.KindTimestamp},
	{Name: recorddomain.ColumnStatus, Kind: recorddomain.KindStatus},
}

var managerColumns = []recorddomain.Column{
	{Name: "manager_id", Kind: recorddomain.KindText},
	{Name: "manager_name", Kind: recorddomain.KindText},
	{Name: "manager_location", Kind: recorddomain.KindText},
	{Name: "access", Kind: recorddomain.KindText},
}

var customerColumns = []recorddomain.Column{
	{Name: "customer_id", Kind: recorddomain.KindText},
	{Name: "customer_name", Kind: recorddomain.KindText},
	{Name: "customer_type", Kind: recorddomain.KindText},
	{Name: "pricing_factor", Kind: recorddomain.KindNumber},
	{Name: "address", Kind: recorddomain.KindText},
	{Name: "post_code", Kind: recorddomain.KindText},
	{Name: "customer_location", Kind: recorddomain.KindText},
	{Name: "email", Kind: recorddomain.KindText},
	{Name: "telephone", Kind: recorddomain.KindText},
	{Name: "customer_code", Kind: recorddomain.KindText},
	{Name: "vat_code", Kind: recorddomain.KindText},
	{Name: "payment_terms", Kind: recorddomain.KindText},
}

var productColumns = []recorddomain.Column{
	{Name: "product_id", Kind: recorddomain.KindText},
	{Name: "product_name", Kind: recorddomain.KindText},
	{Name: "cost", Kind: recorddomain.KindNumber},
	{Name: "product_category", Kind: recorddomain.KindText},
	{Name: "manufacturer", Kind: recorddomain.KindText},
}

var discountColumns = []recorddomain.Column{
	{Name: "discount_id", Kind: recorddomain.KindText},
	{Name: "discount_level", Kind: recorddomain.KindText},
	{Name: "discount_identifier", Kind: recorddomain.KindText},
	{Name: "start_date", Kind: recorddomain.KindDate},
	{Name: "end_date", Kind: recorddomain.KindDate},
	{Name: "discount_percent", Kind: recorddomain.KindNumber},
}

// Computed order columns, appended by the order processing strategy.
var orderComputedColumns = []recorddomain.Column{
	{Name: "price", Kind: recorddomain.KindNumber},
	{Name: "discount_amount", Kind: recorddomain.KindNumber},
	{Name: "price_with_vat", Kind: recorddomain.KindNumber},
	{Name: "price_with_discount", Kind: recorddomain.KindNumber},
	{Name: "price_with_discount_vat", Kind: recorddomain.KindNumber},
	{Name: "sum", Kind: recorddomain.KindNumber},
	{Name: "sum_vat", Kind: recorddomain.KindNumber},
	{Name: "payment_due", Kind: recorddomain.KindDate},
}

var ManagerTable = recorddomain.Table{
	Name:       "manager",
	IDColumn:   "manager_id",
	NameColumn: "manager_name",
	Columns:    append(append([]recorddomain.Column{}, managerColumns...), stampColumns...),
}

var CustomerTable = recorddomain.Table{
	Name:       "customer",
	IDColumn:   "customer_id",
	NameColumn: "customer_name",
	Columns:    append(append([]recorddomain.Column{}, customerColumns...), stampColumns...),
}

var ProductTable = recorddomain.Table{
	Name:       "product",
	IDColumn:   "product_id",
	NameColumn: "product_name",
	Columns:    append(append([]recorddomain.Column{}, productColumns...), stampColumns...),
}

var DiscountTable = recorddomain.Table{
	Name:     "discount",
	IDColumn: "discount_id",
	Columns:  append(append([]recorddomain.Column{}, discountColumns...), stampColumns...),
}

// OrderTable holds one row per order line. Identity is the order id shared by
// every line of one submission.
var OrderTable = recorddomain.Table{
	Name:       "orders",
	IDColumn:   "order_id",
	NameColumn: "customer_name",
	Columns:    orderTableColumns(),
}

func orderTableColumns() []recorddomain.Column {
	cols := []recorddomain.Column{
		{Name: "order_id", Kind: recorddomain.KindText},
		{Name: "order_date", Kind: recorddomain.KindDate},
		{Name: "order_type", Kind: recorddomain.KindText},
	}
	cols = append(cols, managerColumns...)
	cols = append(cols, customerColumns...)
	cols = append(cols, productColumns...)
	cols = append(cols,
		recorddomain.Column{Name: "quantity", Kind: recorddomain.KindInteger},
		recorddomain.Column{Name: "discount", Kind: recorddomain.KindNumber},
	)
	cols = append(cols, orderComputedColumns...)
	return append(cols, stampColumns...)
}

// Tables lists every table descriptor the store manages, in bootstrap order.
func Tables() []recorddomain.Table {
	return []recorddomain.Table{
		ManagerTable,
		CustomerTable,
		ProductTable,
		DiscountTable,
		OrderTable,
	}
}

// TableByName resolves a descriptor from its table name.
func TableByName(name string) (recorddomain.Table, bool) {
	for _, t := range Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return recorddomain.Table{}, false
}
