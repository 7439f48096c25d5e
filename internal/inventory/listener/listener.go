package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/inventory"
	"github.com/veloura/boutique-service/internal/inventory/dto"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/platform/broker"
)

// OrderListener deducts variant stock when an order is paid. Each item
// becomes a regular ledger movement, so sales show up in the same audit
// trail as manual adjustments.
type OrderListener struct {
	consumer *broker.KafkaConsumer
	uc       inventory.UseCase
	logger   *zap.Logger
}

func NewOrderListener(consumer *broker.KafkaConsumer, uc inventory.UseCase, log *zap.Logger) *OrderListener {
	return &OrderListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read order event", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderPaidEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID    string             `json:"id"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderPaidEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderPaid" {
		return
	}

	l.logger.Info("processing OrderPaid event", zap.String("order_id", event.Payload.ID))

	for _, item := range event.Payload.Items {
		if item.VariantID == "" || item.Quantity <= 0 {
			continue
		}
		_, err := l.uc.AdjustStock(ctx, &dto.AdjustStockInput{
			VariantID: item.VariantID,
			Delta:     -item.Quantity,
			Reason:    model.MovementReasonOrderSale,
			CreatedBy: "system",
		})
		if err != nil {
			l.logger.Error("failed to deduct stock for order item",
				zap.String("order_id", event.Payload.ID),
				zap.String("variant_id", item.VariantID),
				zap.Error(err),
			)
		}
	}
}
