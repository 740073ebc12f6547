package model

// SaleRecord is an append-only fact: one successful sale of one product.
// ProductID is a plain identifier; the product may have been deleted since.
type SaleRecord struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index" json:"product_id"`
	Quantity  int    `json:"quantity"`
	DateVente string `gorm:"column:date_vente;index" json:"date_vente"`
}

func (SaleRecord) TableName() string {
	return "sales"
}

// SaleHistoryRow is one line of the sales history read path. UnitPrice is the
// product's current price, not the price at the time of sale.
type SaleHistoryRow struct {
	Timestamp   string  `json:"timestamp"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}
