package cart

import "fmt"

// Seller commits one sale. The sales engine implements it.
type Seller interface {
	Sell(productID uint, quantity int) error
}

// SellerFunc adapts a function to Seller.
type SellerFunc func(productID uint, quantity int) error

func (f SellerFunc) Sell(productID uint, quantity int) error {
	return f(productID, quantity)
}

// LineFailure is a line that could not be sold.
type LineFailure struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Error     string `json:"error"`
	err       error
}

func (f LineFailure) Unwrap() error {
	return f.err
}

// Result summarises a checkout. Total covers every line attempted, priced from
// the snapshot taken before the first sale.
type Result struct {
	Successes int           `json:"successes"`
	Failures  int           `json:"failures"`
	Total     float64       `json:"total"`
	Failed    []LineFailure `json:"failed,omitempty"`
}

// Checkout sells every line independently. A failed line does not stop the
// others and earlier sales are not rolled back. The cart is emptied whatever
// the outcome.
func (c *Cart) Checkout(seller Seller, snapshot Snapshot) Result {
	c.mu.Lock()
	lines := c.linesLocked()
	c.order = nil
	c.lines = make(map[uint]int)
	c.mu.Unlock()

	res := Result{Total: total(lines, snapshot)}
	for _, l := range lines {
		if err := seller.Sell(l.ProductID, l.Quantity); err != nil {
			res.Failures++
			res.Failed = append(res.Failed, LineFailure{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				Error:     fmt.Sprintf("%v", err),
				err:       err,
			})
			continue
		}
		res.Successes++
	}
	return res
}
