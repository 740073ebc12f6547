package service

import (
	"fmt"
	"time"

	"go-pos-backend/internal/logger"
	"go-pos-backend/internal/metrics"
	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/internal/ws"
	"go-pos-backend/pkg/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReceiptRecordedMessage confirms a successful Receive to the operator.
const ReceiptRecordedMessage = "stock entry recorded"

type StockService interface {
	Receive(productID uint, quantity int, actor string) (*model.StockEntry, error)
	Journal(r model.DateRange) ([]model.JournalRow, error)
}

type stockService struct {
	conn        database.Conn
	productRepo repository.ProductRepository
	journalRepo repository.StockJournalRepository
	hub         Publisher
	now         func() time.Time
}

func NewStockService(conn database.Conn, productRepo repository.ProductRepository, journalRepo repository.StockJournalRepository, hub Publisher) StockService {
	return &stockService{
		conn:        conn,
		productRepo: productRepo,
		journalRepo: journalRepo,
		hub:         hub,
		now:         time.Now,
	}
}

// Receive adds quantity to the product and appends the journal entry in one
// transaction, so neither is visible without the other.
func (s *stockService) Receive(productID uint, quantity int, actor string) (*model.StockEntry, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	var (
		entry   *model.StockEntry
		product *model.Product
	)
	err := s.conn.DB().Transaction(func(tx *gorm.DB) error {
		p, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			return err
		}
		if err := s.productRepo.AddStock(tx, p.ID, quantity); err != nil {
			return err
		}
		e := &model.StockEntry{
			ProductID:     p.ID,
			QuantityAdded: quantity,
			DateEntree:    model.FormatTimestamp(s.now()),
		}
		if err := s.journalRepo.Create(tx, e); err != nil {
			return err
		}
		p.Quantity += quantity
		entry, product = e, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.StockReceiptsTotal.Inc()
	metrics.UnitsReceivedTotal.Add(float64(quantity))
	logger.Get().Info(ReceiptRecordedMessage,
		zap.Uint("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("new_quantity", product.Quantity),
		zap.String("by", actor))
	publish(s.hub, ws.Event{
		Type:   "stock_update",
		Action: "stock_received",
		Data: map[string]interface{}{
			"product_id":     product.ID,
			"name":           product.Name,
			"quantity_added": quantity,
			"new_quantity":   product.Quantity,
		},
		User:    actor,
		Message: fmt.Sprintf("%s received %d units of '%s'", actor, quantity, product.Name),
	})
	return entry, nil
}

func (s *stockService) Journal(r model.DateRange) ([]model.JournalRow, error) {
	lower, upper, err := r.Bounds()
	if err != nil {
		return nil, err
	}
	return s.journalRepo.Journal(lower, upper)
}
