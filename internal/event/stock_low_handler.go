package event

import (
	"context"
	"log/slog"

	"github.com/dukasmart/partspos/internal/model"
)

const TopicStockLow = "pos.product.stock_low"

// StockLowEvent is emitted whenever a mutation leaves a product at or under
// its minimum stock. One event per mutation, no de-duplication.
type StockLowEvent struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Category     string  `json:"category"`
	Type         *string `json:"type,omitempty"`
	Quantity     int     `json:"quantity"`
	MinimumStock int     `json:"minimum_stock"`
}

// handleStockLowEvent mails the alert. Delivery failure is logged and
// swallowed so it can never fail or retry the mutation that triggered it.
func (s *Service) handleStockLowEvent(ctx context.Context, ev StockLowEvent) error {
	product := model.Product{
		ProductName:  ev.ProductName,
		Category:     ev.Category,
		Type:         ev.Type,
		Quantity:     ev.Quantity,
		MinimumStock: ev.MinimumStock,
	}

	if err := s.mailer.SendLowStockAlert(ctx, []model.Product{product}); err != nil {
		s.logger.ErrorContext(ctx, "error sending low stock alert",
			slog.String("product_id", ev.ProductID),
			slog.String("product_name", ev.ProductName),
			slog.Any("error", err),
		)
		return nil
	}

	s.logger.InfoContext(ctx, "low stock alert sent",
		slog.String("product_id", ev.ProductID),
		slog.Int("quantity", ev.Quantity),
		slog.Int("minimum_stock", ev.MinimumStock),
	)
	return nil
}
