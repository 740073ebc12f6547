package repository

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"gorm.io/gorm"
)

type StockJournalRepository interface {
	Create(tx *gorm.DB, entry *model.StockEntry) error
	Journal(lower, upper string) ([]model.JournalRow, error)
	Count() (int64, error)
}

type stockJournalRepo struct {
	conn database.Conn
}

func NewStockJournalRepo(conn database.Conn) StockJournalRepository {
	return &stockJournalRepo{conn}
}

func (r *stockJournalRepo) Create(tx *gorm.DB, entry *model.StockEntry) error {
	return tx.Create(entry).Error
}

type journalScan struct {
	DateEntree    string
	ProductID     uint
	Name          *string
	QuantityAdded int
}

func (r *stockJournalRepo) Journal(lower, upper string) ([]model.JournalRow, error) {
	query := r.conn.DB().Table("stock_journal").
		Select("stock_journal.date_entree, stock_journal.product_id, products.name, stock_journal.quantity_added").
		Joins("LEFT JOIN products ON products.id = stock_journal.product_id")
	if lower != "" {
		query = query.Where("stock_journal.date_entree >= ?", lower)
	}
	if upper != "" {
		query = query.Where("stock_journal.date_entree <= ?", upper)
	}

	var scanned []journalScan
	if err := query.Order("stock_journal.date_entree DESC, stock_journal.id DESC").Scan(&scanned).Error; err != nil {
		return nil, err
	}

	rows := make([]model.JournalRow, 0, len(scanned))
	for _, s := range scanned {
		name := model.MissingProductName(s.ProductID)
		if s.Name != nil {
			name = *s.Name
		}
		rows = append(rows, model.JournalRow{
			Timestamp:     s.DateEntree,
			ProductID:     s.ProductID,
			ProductName:   name,
			QuantityAdded: s.QuantityAdded,
		})
	}
	return rows, nil
}

func (r *stockJournalRepo) Count() (int64, error) {
	var n int64
	err := r.conn.DB().Model(&model.StockEntry{}).Count(&n).Error
	return n, err
}
