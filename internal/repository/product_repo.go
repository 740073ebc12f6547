package repository

import (
	"errors"

	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(category string) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	Categories() ([]string, error)

	// Transactional helpers, always called with the tx handle of an open transaction
	LockByID(tx *gorm.DB, id uint) (*model.Product, error)
	AddStock(tx *gorm.DB, id uint, delta int) error
	RemoveStock(tx *gorm.DB, id uint, quantity int) (bool, error)
}

type productRepo struct {
	conn database.Conn
}

func NewProductRepo(conn database.Conn) ProductRepository {
	return &productRepo{conn}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.conn.DB().Create(product).Error
}

// FindAll lists products ordered by id; an empty category means no filter.
func (r *productRepo) FindAll(category string) ([]model.Product, error) {
	var products []model.Product
	query := r.conn.DB().Order("id ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.conn.DB().First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update overwrites every editable column. Unknown ids affect no row and are
// not reported.
func (r *productRepo) Update(product *model.Product) error {
	return r.conn.DB().Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":     product.Name,
			"price":    product.Price,
			"quantity": product.Quantity,
			"category": product.Category,
		}).Error
}

// Delete removes the product row only; sales and journal rows keep their id.
func (r *productRepo) Delete(id uint) error {
	return r.conn.DB().Where("id = ?", id).Delete(&model.Product{}).Error
}

func (r *productRepo) Categories() ([]string, error) {
	var categories []string
	err := r.conn.DB().Model(&model.Product{}).
		Distinct("category").
		Where("category IS NOT NULL AND category != ''").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// LockByID reads the product inside tx. Row locks are a no-op on SQLite,
// where the single connection already serialises writers.
func (r *productRepo) LockByID(tx *gorm.DB, id uint) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) AddStock(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}

// RemoveStock decrements only if enough stock remains, so quantity can never
// go below zero even if the caller's read was stale. Returns false when no row
// qualified.
func (r *productRepo) RemoveStock(tx *gorm.DB, id uint, quantity int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
