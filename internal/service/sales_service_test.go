package service

import (
	"testing"

	"go-pos-backend/internal/cart"
	"go-pos-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSellDecrementsAndRecords(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 10)
	e.sales.now, _ = clock(at("2024-05-05 12:00:00"))

	require.NoError(t, e.sales.Sell(p.ID, 3))
	assert.Equal(t, 7, e.quantity(t, p.ID))

	rows, err := e.sales.History(model.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.SaleHistoryRow{
		Timestamp:   "2024-05-05 12:00:00",
		ProductID:   p.ID,
		ProductName: "Soda",
		Quantity:    3,
		UnitPrice:   500,
		LineTotal:   1500,
	}, rows[0])
}

func TestSellInsufficientStockChangesNothing(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 2)
	_, err := e.stock.Receive(p.ID, 1, "tester")
	require.NoError(t, err)

	err = e.sales.Sell(p.ID, 4)
	assert.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Equal(t, 3, e.quantity(t, p.ID))
	assert.Zero(t, e.countSales(t))

	n, err := e.journalRepo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSellRejectsBadInput(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 2)

	assert.ErrorIs(t, e.sales.Sell(p.ID, 0), model.ErrInvalidQuantity)
	assert.ErrorIs(t, e.sales.Sell(p.ID, -1), model.ErrInvalidQuantity)
	assert.ErrorIs(t, e.sales.Sell(777, 1), model.ErrProductNotFound)
	assert.Zero(t, e.countSales(t))
}

func TestReceiveThenSellRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 4)

	_, err := e.stock.Receive(p.ID, 5, "tester")
	require.NoError(t, err)
	require.NoError(t, e.sales.Sell(p.ID, 5))

	assert.Equal(t, 4, e.quantity(t, p.ID))
}

func TestSellWholeStock(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 4)

	require.NoError(t, e.sales.Sell(p.ID, 4))
	assert.Equal(t, 0, e.quantity(t, p.ID))
	assert.ErrorIs(t, e.sales.Sell(p.ID, 1), model.ErrInsufficientStock)
}

func TestHistoryUsesCurrentPrice(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 100, 10)
	require.NoError(t, e.sales.Sell(p.ID, 2))

	require.NoError(t, e.catalog.Update(p.ID, &ProductRequest{Name: "Soda", Price: 150, Quantity: 8}, "tester"))

	rows, err := e.sales.History(model.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 150.0, rows[0].UnitPrice)
	assert.Equal(t, 300.0, rows[0].LineTotal)
}

func TestHistoryDeletedProduct(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 100, 10)
	require.NoError(t, e.sales.Sell(p.ID, 2))
	require.NoError(t, e.catalog.Remove(p.ID, "tester"))

	rows, err := e.sales.History(model.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.MissingProductName(p.ID), rows[0].ProductName)
	assert.Zero(t, rows[0].UnitPrice)
	assert.Zero(t, rows[0].LineTotal)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestHistoryNewestFirstWithinRange(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 100, 10)
	now, set := clock(at("2024-02-01 10:00:00"))
	e.sales.now = now

	for _, ts := range []string{"2024-02-01 10:00:00", "2024-02-02 09:00:00", "2024-02-02 18:00:00", "2024-02-03 07:00:00"} {
		set(at(ts))
		require.NoError(t, e.sales.Sell(p.ID, 1))
	}

	rows, err := e.sales.History(model.DateRange{From: "2024-02-02", To: "2024-02-02"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-02-02 18:00:00", rows[0].Timestamp)
	assert.Equal(t, "2024-02-02 09:00:00", rows[1].Timestamp)
}

func TestCartCheckoutPartialFailureAgainstStore(t *testing.T) {
	e := newTestEnv(t)
	a := e.addProduct(t, "Soda", 500, 10)
	b := e.addProduct(t, "Beer", 1500, 2)
	sess := e.sessions.Create(1, "manager", model.RoleManager)

	require.NoError(t, sess.Cart.AddLine(a.ID, 1))
	require.NoError(t, sess.Cart.AddLine(b.ID, 5))
	snap, err := e.catalog.Snapshot()
	require.NoError(t, err)

	res := sess.Cart.Checkout(e.sales, snap)

	assert.Equal(t, 1, res.Successes)
	assert.Equal(t, 1, res.Failures)
	assert.Equal(t, 500.0+5*1500.0, res.Total)
	assert.Equal(t, 9, e.quantity(t, a.ID))
	assert.Equal(t, 2, e.quantity(t, b.ID))
	assert.Equal(t, 0, sess.Cart.Len())
	assert.Equal(t, int64(1), e.countSales(t))
}

func TestCheckoutReconcilesFirst(t *testing.T) {
	e := newTestEnv(t)
	a := e.addProduct(t, "Soda", 500, 10)
	b := e.addProduct(t, "Beer", 1500, 5)
	sess := e.sessions.Create(1, "manager", model.RoleManager)

	require.NoError(t, e.sales.AddToCart(sess, a.ID, 2))
	require.NoError(t, e.sales.AddToCart(sess, b.ID, 5))
	require.NoError(t, e.sales.Sell(b.ID, 2))

	res, err := e.sales.Checkout(sess)
	require.NoError(t, err)
	require.Len(t, res.Adjustments, 1)
	assert.Equal(t, cart.Adjustment{ProductID: b.ID, From: 5, To: 3, Message: res.Adjustments[0].Message}, res.Adjustments[0])
	assert.Equal(t, 2, res.Successes)
	assert.Equal(t, 0, res.Failures)
	assert.Equal(t, 2*500.0+3*1500.0, res.Total)
	assert.Equal(t, 8, e.quantity(t, a.ID))
	assert.Equal(t, 0, e.quantity(t, b.ID))
	assert.Equal(t, 0, sess.Cart.Len())
	assert.Contains(t, e.hub.actions(), "checkout_complete")
}

func TestCheckoutEmptyCart(t *testing.T) {
	e := newTestEnv(t)
	sess := e.sessions.Create(1, "manager", model.RoleManager)

	_, err := e.sales.Checkout(sess)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
}

func TestCheckoutAllLinesDroppedByReconcile(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 1)
	sess := e.sessions.Create(1, "manager", model.RoleManager)
	require.NoError(t, e.sales.AddToCart(sess, p.ID, 1))
	require.NoError(t, e.catalog.Remove(p.ID, "tester"))

	res, err := e.sales.Checkout(sess)
	require.NoError(t, err)
	assert.Zero(t, res.Successes)
	assert.Zero(t, res.Failures)
	require.Len(t, res.Adjustments, 1)
	assert.True(t, res.Adjustments[0].Removed)
	assert.Equal(t, 0, sess.Cart.Len())
}

func TestAddToCartChecksStock(t *testing.T) {
	e := newTestEnv(t)
	p := e.addProduct(t, "Soda", 500, 3)
	sess := e.sessions.Create(1, "manager", model.RoleManager)

	require.NoError(t, e.sales.AddToCart(sess, p.ID, 2))
	assert.ErrorIs(t, e.sales.AddToCart(sess, p.ID, 2), model.ErrInsufficientStock)
	assert.ErrorIs(t, e.sales.AddToCart(sess, 404, 1), model.ErrProductNotFound)
	assert.ErrorIs(t, e.sales.AddToCart(sess, p.ID, 0), model.ErrInvalidQuantity)
	require.NoError(t, e.sales.AddToCart(sess, p.ID, 1))

	assert.Equal(t, []cart.Line{{ProductID: p.ID, Quantity: 3}}, sess.Cart.Lines())

	e.sales.RemoveFromCart(sess, p.ID)
	assert.Equal(t, 0, sess.Cart.Len())
}

func TestViewCartPricesAndConverts(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.config.SeedDefaults())
	a := e.addProduct(t, "Soda", 550, 10)
	b := e.addProduct(t, "Beer", 1100, 10)
	sess := e.sessions.Create(1, "manager", model.RoleManager)
	require.NoError(t, e.sales.AddToCart(sess, a.ID, 2))
	require.NoError(t, e.sales.AddToCart(sess, b.ID, 1))

	view, err := e.sales.ViewCart(sess)
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, "Soda", view.Lines[0].ProductName)
	assert.Equal(t, 1100.0, view.Lines[0].LineTotal)
	assert.Equal(t, 2200.0, view.Total)
	assert.Equal(t, model.DefaultUSDRate, view.Rate)
	assert.InDelta(t, 0.8, view.TotalForeign, 1e-9)
	assert.Empty(t, view.Adjustments)
}
