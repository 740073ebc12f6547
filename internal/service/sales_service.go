package service

import (
	"errors"
	"fmt"
	"time"

	"go-pos-backend/internal/cart"
	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/metrics"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/session"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SalesService interface {
	Sell(productID uint, quantity int) error
	History(r model.DateRange) ([]model.SaleHistoryRow, error)

	AddToCart(sess *session.Session, productID uint, quantity int) error
	RemoveFromCart(sess *session.Session, productID uint)
	ViewCart(sess *session.Session) (*CartView, error)
	Checkout(sess *session.Session) (*CheckoutResult, error)
}

// CartLineView is a cart line priced from the live catalog.
type CartLineView struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

type CartView struct {
	Lines        []CartLineView    `json:"lines"`
	Total        float64           `json:"total"`
	TotalForeign float64           `json:"total_foreign"`
	Rate         float64           `json:"rate"`
	Adjustments  []cart.Adjustment `json:"adjustments,omitempty"`
}

type CheckoutResult struct {
	cart.Result
	Adjustments []cart.Adjustment `json:"adjustments,omitempty"`
}

type salesService struct {
	conn        database.Conn
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	converter   *CurrencyConverter
	hub         Publisher
	now         func() time.Time
}

func NewSalesService(conn database.Conn, productRepo repository.ProductRepository, saleRepo repository.SaleRepository, converter *CurrencyConverter, hub Publisher) SalesService {
	return &salesService{
		conn:        conn,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		converter:   converter,
		hub:         hub,
		now:         time.Now,
	}
}

// Sell decrements stock and appends the sale record in one transaction. On
// any failure neither happens.
func (s *salesService) Sell(productID uint, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	start := time.Now()

	var product *model.Product
	err := s.conn.DB().Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			return err
		}
		if p.Quantity < quantity {
			return fmt.Errorf("%w: %d requested, %d available", model.ErrInsufficientStock, quantity, p.Quantity)
		}
		ok, err := s.productRepo.RemoveStock(tx, p.ID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return model.ErrInsufficientStock
		}
		sale := &model.SaleRecord{
			ProductID: p.ID,
			Quantity:  quantity,
			DateVente: model.FormatTimestamp(s.now()),
		}
		if err := s.saleRepo.Create(tx, sale); err != nil {
			return err
		}
		p.Quantity -= quantity
		product = p
		return nil
	})
	metrics.SaleLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SalesFailedTotal.WithLabelValues(failureReason(err)).Inc()
		return err
	}

	metrics.SalesTotal.Inc()
	metrics.UnitsSoldTotal.Add(float64(quantity))
	logger.Get().Info("sale recorded",
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("remaining", product.Quantity))
	publish(s.hub, ws.Event{
		Type:   "stock_update",
		Action: "sale_recorded",
		Data: map[string]interface{}{
			"product_id":   product.ID,
			"name":         product.Name,
			"quantity":     quantity,
			"new_quantity": product.Quantity,
		},
		Message: fmt.Sprintf("%d units of '%s' sold", quantity, product.Name),
	})
	return nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, model.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "store_error"
	}
}

func (s *salesService) History(r model.DateRange) ([]model.SaleHistoryRow, error) {
	lower, upper, err := r.Bounds()
	if err != nil {
		return nil, err
	}
	return s.saleRepo.History(lower, upper)
}

// AddToCart stages quantity for productID. The merged quantity may not exceed
// the stock currently on hand.
func (s *salesService) AddToCart(sess *session.Session, productID uint, quantity int) error {
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}
	p, err := s.productRepo.FindByID(productID)
	if err != nil {
		return err
	}
	staged := 0
	for _, l := range sess.Cart.Lines() {
		if l.ProductID == productID {
			staged = l.Quantity
		}
	}
	if staged+quantity > p.Quantity {
		remaining := p.Quantity - staged
		if remaining < 0 {
			remaining = 0
		}
		return fmt.Errorf("%w: only %d units of '%s' left", model.ErrInsufficientStock, remaining, p.Name)
	}
	return sess.Cart.AddLine(productID, quantity)
}

func (s *salesService) RemoveFromCart(sess *session.Session, productID uint) {
	sess.Cart.RemoveLine(productID)
}

func (s *salesService) snapshot() (cart.Snapshot, error) {
	products, err := s.productRepo.FindAll("")
	if err != nil {
		return nil, err
	}
	return cart.NewSnapshot(products), nil
}

// ViewCart reconciles the cart against live stock and prices it.
func (s *salesService) ViewCart(sess *session.Session) (*CartView, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	adjustments := sess.Cart.Reconcile(snap)
	metrics.CartAdjustmentsTotal.Add(float64(len(adjustments)))

	view := &CartView{Lines: []CartLineView{}, Adjustments: adjustments}
	for _, l := range sess.Cart.Lines() {
		p := snap[l.ProductID]
		line := CartLineView{
			ProductID:   l.ProductID,
			ProductName: p.Name,
			Quantity:    l.Quantity,
			UnitPrice:   p.Price,
			LineTotal:   float64(l.Quantity) * p.Price,
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.LineTotal
	}
	view.TotalForeign, view.Rate = s.converter.Convert(view.Total)
	return view, nil
}

// Checkout reconciles then sells each line on its own. Lines already sold stay
// sold when a later one fails; the cart ends empty either way.
func (s *salesService) Checkout(sess *session.Session) (*CheckoutResult, error) {
	if sess.Cart.Len() == 0 {
		return nil, model.ErrEmptyCart
	}
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	adjustments := sess.Cart.Reconcile(snap)
	metrics.CartAdjustmentsTotal.Add(float64(len(adjustments)))
	if sess.Cart.Len() == 0 {
		return &CheckoutResult{Adjustments: adjustments}, nil
	}

	res := sess.Cart.Checkout(s, snap)

	outcome := "complete"
	switch {
	case res.Successes == 0:
		outcome = "failed"
	case res.Failures > 0:
		outcome = "partial"
	}
	metrics.CheckoutsTotal.WithLabelValues(outcome).Inc()

	log := logger.Get().With(zap.String("session", sess.ID.String()), zap.String("user", sess.Username))
	if res.Failures > 0 {
		log.Warn("checkout finished with failures",
			zap.Int("successes", res.Successes),
			zap.Int("failures", res.Failures))
	} else {
		log.Info("checkout complete", zap.Int("lines", res.Successes), zap.Float64("total", res.Total))
	}
	publish(s.hub, ws.Event{
		Type:    "sale_update",
		Action:  "checkout_" + outcome,
		Data:    res,
		User:    sess.Username,
		Message: fmt.Sprintf("%s sold %d line(s), %d failed", sess.Username, res.Successes, res.Failures),
	})
	return &CheckoutResult{Result: res, Adjustments: adjustments}, nil
}
