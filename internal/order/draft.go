package order

import (
	"fmt"
	"time"

	"github.com/medexy/sandelia/internal/entity"
)

// Line is one product position of a draft order.
type Line struct {
	Product  entity.Product
	Quantity int64
	Discount float64
}

// Draft is the explicit working state of one order entry cycle. It replaces
// ambient session globals: the caller owns it for the duration of a single
// user interaction and hands it to Submit when done.
type Draft struct {
	Manager   entity.Manager
	Customer  entity.Customer
	OrderDate time.Time
	OrderType entity.OrderType

	lines []Line
}

// AddLine appends a product position. An unset discount stays zero.
func (d *Draft) AddLine(line Line) {
	d.lines = append(d.lines, line)
}

// RemoveLine drops the position at index.
func (d *Draft) RemoveLine(index int) error {
	if index < 0 || index >= len(d.lines) {
		return fmt.Errorf("no order line at index %d", index)
	}
	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	return nil
}

// Lines returns the current positions.
func (d *Draft) Lines() []Line {
	return d.lines
}

// Reset clears the positions after a submission.
func (d *Draft) Reset() {
	d.lines = nil
}

func (d *Draft) entities() []entity.Entity {
	out := make([]entity.Entity, 0, len(d.lines))
	for _, line := range d.lines {
		out = append(out, entity.OrderLine{
			Manager:   d.Manager,
			Customer:  d.Customer,
			Product:   line.Product,
			OrderDate: d.OrderDate,
			OrderType: d.OrderType,
			Quantity:  line.Quantity,
			Discount:  line.Discount,
		})
	}
	return out
}
