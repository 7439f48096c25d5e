package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/catalog"
	"github.com/veloura/boutique-service/internal/mailer"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/order"
	"github.com/veloura/boutique-service/internal/order/dto"
	"github.com/veloura/boutique-service/internal/variant"
)

// Publisher is the outbound event port, satisfied by the Kafka producer.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

var validTransitions = map[string][]string{
	model.OrderStatusPending: {model.OrderStatusPaid, model.OrderStatusCancelled},
	model.OrderStatusPaid:    {model.OrderStatusShipped},
}

type orderUseCase struct {
	repo      order.Repository
	products  catalog.Repository
	publisher Publisher
	sender    mailer.Sender
	currency  string
	logger    *zap.Logger
}

// NewOrderUseCase builds the order usecase. publisher and sender may be nil
// in tests or degraded deployments; marking paid then skips the side effects.
func NewOrderUseCase(repo order.Repository, products catalog.Repository, publisher Publisher, sender mailer.Sender, currency string, logger *zap.Logger) order.UseCase {
	return &orderUseCase{
		repo:      repo,
		products:  products,
		publisher: publisher,
		sender:    sender,
		currency:  strings.ToUpper(currency),
		logger:    logger,
	}
}

// CreateOrder re-quotes every line server side. The storefront's displayed
// price is advisory; the price charged is always derived from the current
// product and its variant index.
func (uc *orderUseCase) CreateOrder(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error) {
	if len(input.Lines) == 0 {
		return nil, order.ErrEmptyOrder
	}

	now := time.Now()
	o := &model.Order{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID: input.CustomerID,
		Email:      input.Email,
		Status:     model.OrderStatusPending,
		Currency:   uc.currency,
	}

	for _, line := range input.Lines {
		item, err := uc.quoteLine(ctx, &line)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
		o.Total += item.UnitPrice * float64(item.Quantity)
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (uc *orderUseCase) quoteLine(ctx context.Context, line *dto.OrderLineInput) (*model.OrderItem, error) {
	if line.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", order.ErrLineNotAvailable)
	}

	product, err := uc.products.FindByID(ctx, line.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, fmt.Errorf("%w: product %s", order.ErrLineNotAvailable, line.ProductID)
	}

	rows, err := uc.products.VariantRows(ctx, product.ID)
	if err != nil {
		return nil, err
	}

	idx := variant.Parse(rows)
	for _, w := range idx.Warnings {
		uc.logger.Warn("variant data inconsistency",
			zap.String("productID", product.ID),
			zap.String("warning", w))
	}

	sel := variant.Selection{Color: line.Color, Size: line.Size}
	quote := variant.Resolve(idx, product.BasePrice(), product.StockQuantity, sel)
	if err := idx.CartAddError(sel, quote); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", order.ErrLineNotAvailable, product.Name, err)
	}
	if line.Quantity > quote.EffectiveStock {
		return nil, fmt.Errorf("%w: %s: only %d left", order.ErrLineNotAvailable, product.Name, quote.EffectiveStock)
	}

	item := &model.OrderItem{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		VariantKey:  variant.CartKey(product.ID, sel.Color, sel.Size),
		ProductName: product.Name,
		Quantity:    line.Quantity,
		UnitPrice:   quote.DisplayPrice,
	}
	if sel.Color != "" {
		item.Color = &sel.Color
	}
	if sel.Size != "" {
		item.Size = &sel.Size
	}
	return item, nil
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *orderUseCase) UpdateStatus(ctx context.Context, id, status string) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}

	allowed := false
	for _, next := range validTransitions[o.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, o.Status, status)
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	o.Status = status

	if status == model.OrderStatusPaid {
		uc.onPaid(ctx, o)
	}
	return o, nil
}

func (uc *orderUseCase) MarkPaidBySession(ctx context.Context, sessionID string) (*model.Order, error) {
	o, err := uc.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, order.ErrOrderNotFound
	}
	if o.Status == model.OrderStatusPaid {
		// Payment callbacks retry; a second delivery must not deduct twice.
		return o, nil
	}
	return uc.UpdateStatus(ctx, o.ID, model.OrderStatusPaid)
}

// onPaid runs the side effects of a paid order: the stock deduction event
// and the confirmation email. Both are best effort; the status change has
// already been committed.
func (uc *orderUseCase) onPaid(ctx context.Context, o *model.Order) {
	if uc.publisher != nil {
		if err := uc.publishPaidEvent(ctx, o); err != nil {
			uc.logger.Error("failed to publish OrderPaid event",
				zap.String("orderID", o.ID), zap.Error(err))
		}
	}

	if uc.sender != nil {
		html, err := mailer.RenderOrderConfirmation(o)
		if err != nil {
			uc.logger.Error("failed to render confirmation email",
				zap.String("orderID", o.ID), zap.Error(err))
			return
		}
		err = uc.sender.Send(ctx, &mailer.Message{
			ToEmail: o.Email,
			Subject: "Votre commande Veloura est confirmée",
			HTML:    html,
		})
		if err != nil {
			uc.logger.Error("failed to send confirmation email",
				zap.String("orderID", o.ID), zap.Error(err))
		}
	}
}

type orderPaidEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   orderPaidPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type orderPaidPayload struct {
	ID    string           `json:"id"`
	Items []orderItemEvent `json:"items"`
}

type orderItemEvent struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// publishPaidEvent maps each line's selection back to the variant rows it
// covers and emits one deduction per row. A line on a product without rows
// ships with an empty variant id and is skipped by the consumer.
func (uc *orderUseCase) publishPaidEvent(ctx context.Context, o *model.Order) error {
	event := orderPaidEvent{
		EventID:   uuid.New().String(),
		EventType: "OrderPaid",
		Payload:   orderPaidPayload{ID: o.ID},
		Timestamp: time.Now(),
	}

	for _, item := range o.Items {
		rowIDs, err := uc.rowsForItem(ctx, &item)
		if err != nil {
			return err
		}
		if len(rowIDs) == 0 {
			event.Payload.Items = append(event.Payload.Items, orderItemEvent{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
			continue
		}
		for _, rowID := range rowIDs {
			event.Payload.Items = append(event.Payload.Items, orderItemEvent{
				ProductID: item.ProductID,
				VariantID: rowID,
				Quantity:  item.Quantity,
			})
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return uc.publisher.Publish(ctx, []byte(o.ID), body)
}

// rowsForItem finds the active rows backing the item's stored selection, so
// one unit sold decrements every row of the combination. Values are matched
// per axis role: the stored color only against color rows and the stored
// size only against size rows, never against an inert axis that happens to
// share the value.
func (uc *orderUseCase) rowsForItem(ctx context.Context, item *model.OrderItem) ([]string, error) {
	if item.Color == nil && item.Size == nil {
		return nil, nil
	}

	rows, err := uc.products.VariantRows(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	var ids []string
	for i := range rows {
		r := &rows[i]
		if !r.Active() {
			continue
		}
		if item.Color != nil && variant.IsColorAxis(r.Name) && r.Value == *item.Color {
			ids = append(ids, r.ID)
			continue
		}
		if item.Size != nil && variant.IsSizeAxis(r.Name) && r.Value == *item.Size {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}
