package service

import (
	"go-pos-backend/internal/model"
)

type SalesReportRow struct {
	model.SaleHistoryRow
	LineTotalForeign float64 `json:"line_total_foreign"`
}

// SalesReport is the data behind the printed sales report.
type SalesReport struct {
	From              string           `json:"from,omitempty"`
	To                string           `json:"to,omitempty"`
	Rows              []SalesReportRow `json:"rows"`
	TotalQuantity     int              `json:"total_quantity"`
	GrandTotal        float64          `json:"grand_total"`
	GrandTotalForeign float64          `json:"grand_total_foreign"`
	Rate              float64          `json:"rate"`
}

// StockReport is the data behind the printed replenishment report.
type StockReport struct {
	From       string             `json:"from,omitempty"`
	To         string             `json:"to,omitempty"`
	Rows       []model.JournalRow `json:"rows"`
	TotalUnits int                `json:"total_units"`
}

type ReportService interface {
	Sales(r model.DateRange) (*SalesReport, error)
	Stock(r model.DateRange) (*StockReport, error)
}

type reportService struct {
	sales     SalesService
	stock     StockService
	converter *CurrencyConverter
}

func NewReportService(sales SalesService, stock StockService, converter *CurrencyConverter) ReportService {
	return &reportService{sales: sales, stock: stock, converter: converter}
}

// Sales converts every row with one rate read up front, so the totals and the
// rows agree even if the rate changes meanwhile.
func (s *reportService) Sales(r model.DateRange) (*SalesReport, error) {
	history, err := s.sales.History(r)
	if err != nil {
		return nil, err
	}
	rate := s.converter.Rate()

	report := &SalesReport{From: r.From, To: r.To, Rows: make([]SalesReportRow, 0, len(history)), Rate: rate}
	for _, h := range history {
		report.Rows = append(report.Rows, SalesReportRow{
			SaleHistoryRow:   h,
			LineTotalForeign: ToForeign(h.LineTotal, rate),
		})
		report.TotalQuantity += h.Quantity
		report.GrandTotal += h.LineTotal
	}
	report.GrandTotalForeign = ToForeign(report.GrandTotal, rate)
	return report, nil
}

func (s *reportService) Stock(r model.DateRange) (*StockReport, error) {
	rows, err := s.stock.Journal(r)
	if err != nil {
		return nil, err
	}
	report := &StockReport{From: r.From, To: r.To, Rows: rows}
	for _, row := range rows {
		report.TotalUnits += row.QuantityAdded
	}
	return report, nil
}
