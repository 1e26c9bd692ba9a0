package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dukasmart/partspos/internal/event"
	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
	"github.com/dukasmart/partspos/pkg/outbox"
	"github.com/dukasmart/partspos/pkg/ptr"
)

// stockLowOutboxMsg builds the outbox row for a product that ended a
// mutation at or under its minimum stock. Written in the same transaction
// as the mutation so alert and state can never disagree.
func stockLowOutboxMsg(ctx context.Context, product model.Product) (repository.CreateOutboxMsgParams, error) {
	ev := event.StockLowEvent{
		ProductID:    product.ID.String(),
		ProductName:  product.ProductName,
		Category:     product.Category,
		Type:         product.Type,
		Quantity:     product.Quantity,
		MinimumStock: product.MinimumStock,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return repository.CreateOutboxMsgParams{}, fmt.Errorf("marshal stock low event: %w", err)
	}

	return repository.CreateOutboxMsgParams{
		Topic:        event.TopicStockLow,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      evBytes,
		PartitionKey: ptr.New(product.ID.String()),
	}, nil
}

func saleRecordedOutboxMsg(ctx context.Context, sale model.Sale) (repository.CreateOutboxMsgParams, error) {
	ev := event.SaleRecordedEvent{
		SaleID:       sale.ID.String(),
		ProductID:    sale.ProductID.String(),
		ProductName:  sale.ProductName,
		QuantitySold: sale.QuantitySold,
		SalePrice:    sale.SalePrice,
		StaffName:    sale.StaffName,
		Date:         sale.Date,
	}

	evBytes, err := json.Marshal(ev)
	if err != nil {
		return repository.CreateOutboxMsgParams{}, fmt.Errorf("marshal sale recorded event: %w", err)
	}

	return repository.CreateOutboxMsgParams{
		Topic:        event.TopicSaleRecorded,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      evBytes,
		PartitionKey: ptr.New(sale.ProductID.String()),
	}, nil
}
