package event

import (
	"context"
	"log/slog"
	"time"
)

const TopicSaleRecorded = "pos.sale.recorded"

type SaleRecordedEvent struct {
	SaleID       string    `json:"sale_id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name"`
	QuantitySold int       `json:"quantity_sold"`
	SalePrice    float64   `json:"sale_price"`
	StaffName    string    `json:"staff_name"`
	Date         time.Time `json:"date"`
}

func (s *Service) handleSaleRecordedEvent(ctx context.Context, ev SaleRecordedEvent) error {
	s.logger.InfoContext(ctx, "handling sale recorded event", slog.Any("event", ev))
	return nil
}
