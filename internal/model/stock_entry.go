package model

// StockEntry records one replenishment. Never updated or deleted.
type StockEntry struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ProductID     uint   `gorm:"index" json:"product_id"`
	QuantityAdded int    `gorm:"not null" json:"quantity_added"`
	DateEntree    string `gorm:"column:date_entree;not null;index" json:"date_entree"`
}

func (StockEntry) TableName() string {
	return "stock_journal"
}

// JournalRow is one line of the replenishment journal read path.
type JournalRow struct {
	Timestamp     string `json:"timestamp"`
	ProductID     uint   `json:"product_id"`
	ProductName   string `json:"product_name"`
	QuantityAdded int    `json:"quantity_added"`
}
