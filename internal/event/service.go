package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dukasmart/partspos/internal/mail"
	"github.com/dukasmart/partspos/internal/storage/mq"
)

// Service is the event service. It consumes the domain events relayed from
// the outbox and runs their side effects (alert mail, audit logging).
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
	mailer     mail.Mailer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
	mailer mail.Mailer,
) *Service {
	return &Service{
		logger:     logger,
		mqConsumer: mqConsumer,
		mailer:     mailer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(
		TopicStockLow,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev StockLowEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal stock low event: %w", err)
			}

			if err := s.handleStockLowEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle stock low event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register stock low event handler: %w", err)
	}

	if err := s.mqConsumer.RegisterHandler(
		TopicSaleRecorded,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev SaleRecordedEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal sale recorded event: %w", err)
			}

			if err := s.handleSaleRecordedEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle sale recorded event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register sale recorded event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}
