package domain

import "github.com/shopspring/decimal"

// CartLine is a product together with the quantity held in the cart.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal is price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an immutable snapshot of the cart lines in insertion order.
// Snapshots are replaced wholesale; callers must not modify Lines.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Len returns the number of lines.
func (c Cart) Len() int {
	return len(c.Lines)
}

// Line returns the line for the product id.
func (c Cart) Line(id int64) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ID == id {
			return line, true
		}
	}
	return CartLine{}, false
}

func (c Cart) Contains(id int64) bool {
	_, ok := c.Line(id)
	return ok
}

// Quantity returns the quantity held for the product id, 0 when absent.
func (c Cart) Quantity(id int64) int {
	line, _ := c.Line(id)
	return line.Quantity
}

func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums price*quantity over every line.
func (c Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
