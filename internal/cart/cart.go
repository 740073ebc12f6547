// Package cart holds the pending multi-item sale of one session. It is kept in
// memory only and is reconciled against live stock before checkout.
package cart

import (
	"fmt"
	"sync"

	"go-pos-backend/internal/model"
)

// Line is one requested product in the cart.
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Snapshot is a point-in-time view of the catalog keyed by product id.
type Snapshot map[uint]model.Product

func NewSnapshot(products []model.Product) Snapshot {
	s := make(Snapshot, len(products))
	for _, p := range products {
		s[p.ID] = p
	}
	return s
}

// Adjustment describes what Reconcile did to a line.
type Adjustment struct {
	ProductID uint   `json:"product_id"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Removed   bool   `json:"removed"`
	Message   string `json:"message"`
}

// Cart keeps lines in insertion order. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	order []uint
	lines map[uint]int
}

func New() *Cart {
	return &Cart{lines: make(map[uint]int)}
}

// AddLine merges quantity into an existing line for the same product.
func (c *Cart) AddLine(productID uint, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lines[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.lines[productID] += quantity
	return nil
}

// RemoveLine drops the line for productID. Unknown ids are ignored.
func (c *Cart) RemoveLine(productID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID uint) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Lines returns a copy of the cart content in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.linesLocked()
}

func (c *Cart) linesLocked() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Line{ProductID: id, Quantity: c.lines[id]})
	}
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.lines = make(map[uint]int)
}

// Reconcile clamps every line to the stock in snapshot. Lines whose product is
// gone or out of stock are dropped. One adjustment is returned per changed line.
func (c *Cart) Reconcile(snapshot Snapshot) []Adjustment {
	c.mu.Lock()
	defer c.mu.Unlock()

	var adjustments []Adjustment
	for _, line := range c.linesLocked() {
		p, ok := snapshot[line.ProductID]
		available := 0
		if ok {
			available = p.Quantity
		}
		if line.Quantity <= available {
			continue
		}
		if available <= 0 {
			c.removeLocked(line.ProductID)
			msg := fmt.Sprintf("product #%d removed from cart: out of stock", line.ProductID)
			if ok {
				msg = fmt.Sprintf("%s removed from cart: out of stock", p.Name)
			}
			adjustments = append(adjustments, Adjustment{
				ProductID: line.ProductID, From: line.Quantity, To: 0, Removed: true, Message: msg,
			})
			continue
		}
		c.lines[line.ProductID] = available
		adjustments = append(adjustments, Adjustment{
			ProductID: line.ProductID,
			From:      line.Quantity,
			To:        available,
			Message:   fmt.Sprintf("%s quantity reduced from %d to %d", p.Name, line.Quantity, available),
		})
	}
	return adjustments
}

// Total is Σ quantity × price over lines present in snapshot.
func (c *Cart) Total(snapshot Snapshot) float64 {
	return total(c.Lines(), snapshot)
}

func total(lines []Line, snapshot Snapshot) float64 {
	var sum float64
	for _, l := range lines {
		if p, ok := snapshot[l.ProductID]; ok {
			sum += float64(l.Quantity) * p.Price
		}
	}
	return sum
}
