package repository

import (
	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.SaleRecord) error
	History(lower, upper string) ([]model.SaleHistoryRow, error)
	GetStockMovement(lower, upper string) ([]StockMovementData, error)
	GetDashboardStats(lowStockThreshold int) (*DashboardStats, error)
}

// StockMovementData is one day of the inbound/outbound chart
type StockMovementData struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// DashboardStats for the overview cards
type DashboardStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

type saleRepo struct {
	conn database.Conn
}

func NewSaleRepo(conn database.Conn) SaleRepository {
	return &saleRepo{conn}
}

func (r *saleRepo) Create(tx *gorm.DB, sale *model.SaleRecord) error {
	return tx.Create(sale).Error
}

type saleHistoryScan struct {
	DateVente string
	ProductID uint
	Name      *string
	Price     *float64
	Quantity  int
}

// History joins each sale with the product's current name and price. Empty
// bounds are not applied. Ordered newest first, ties broken by id.
func (r *saleRepo) History(lower, upper string) ([]model.SaleHistoryRow, error) {
	query := r.conn.DB().Table("sales").
		Select("sales.date_vente, sales.product_id, products.name, products.price, sales.quantity").
		Joins("LEFT JOIN products ON products.id = sales.product_id")
	if lower != "" {
		query = query.Where("sales.date_vente >= ?", lower)
	}
	if upper != "" {
		query = query.Where("sales.date_vente <= ?", upper)
	}

	var scanned []saleHistoryScan
	if err := query.Order("sales.date_vente DESC, sales.id DESC").Scan(&scanned).Error; err != nil {
		return nil, err
	}

	rows := make([]model.SaleHistoryRow, 0, len(scanned))
	for _, s := range scanned {
		row := model.SaleHistoryRow{
			Timestamp: s.DateVente,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
		}
		if s.Name != nil {
			row.ProductName = *s.Name
		} else {
			row.ProductName = model.MissingProductName(s.ProductID)
		}
		if s.Price != nil {
			row.UnitPrice = *s.Price
		}
		row.LineTotal = float64(row.Quantity) * row.UnitPrice
		rows = append(rows, row)
	}
	return rows, nil
}

// GetStockMovement aggregates both journals per day between the two
// timestamps. The date is the first ten characters of the stored timestamp.
func (r *saleRepo) GetStockMovement(lower, upper string) ([]StockMovementData, error) {
	rows, err := r.conn.DB().Raw(`
		SELECT day, COALESCE(SUM(inbound), 0), COALESCE(SUM(outbound), 0) FROM (
			SELECT SUBSTR(date_entree, 1, 10) AS day, quantity_added AS inbound, 0 AS outbound
			FROM stock_journal WHERE date_entree BETWEEN ? AND ?
			UNION ALL
			SELECT SUBSTR(date_vente, 1, 10) AS day, 0 AS inbound, quantity AS outbound
			FROM sales WHERE date_vente BETWEEN ? AND ?
		) movement
		GROUP BY day
		ORDER BY day ASC`, lower, upper, lower, upper).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []StockMovementData{}
	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *saleRepo) GetDashboardStats(lowStockThreshold int) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.conn.DB()

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("quantity < ?", lowStockThreshold).Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Select("COALESCE(SUM(quantity * price), 0)").Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
