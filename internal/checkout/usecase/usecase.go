package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/checkout"
	"github.com/veloura/boutique-service/internal/customer"
	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/newsletter"
	"github.com/veloura/boutique-service/internal/order"
	"github.com/veloura/boutique-service/internal/order/dto"
)

type checkoutUseCase struct {
	orders      order.UseCase
	orderRepo   order.Repository
	gateway     checkout.PaymentGateway
	customers   customer.UseCase
	subscribers newsletter.UseCase
	logger      *zap.Logger
}

func NewCheckoutUseCase(
	orders order.UseCase,
	orderRepo order.Repository,
	gateway checkout.PaymentGateway,
	customers customer.UseCase,
	subscribers newsletter.UseCase,
	logger *zap.Logger,
) checkout.UseCase {
	return &checkoutUseCase{
		orders:      orders,
		orderRepo:   orderRepo,
		gateway:     gateway,
		customers:   customers,
		subscribers: subscribers,
		logger:      logger,
	}
}

func (uc *checkoutUseCase) StartCheckout(ctx context.Context, input *checkout.StartCheckoutInput) (*checkout.StartCheckoutResult, error) {
	o, err := uc.orders.CreateOrder(ctx, &dto.CreateOrderInput{
		Email: input.Email,
		Lines: input.Lines,
	})
	if err != nil {
		return nil, err
	}

	session, err := uc.gateway.CreateSession(ctx, o)
	if err != nil {
		return nil, err
	}

	if err := uc.orderRepo.AttachSession(ctx, o.ID, session.SessionID); err != nil {
		return nil, err
	}

	return &checkout.StartCheckoutResult{
		OrderID:     o.ID,
		RedirectURL: session.URL,
	}, nil
}

func (uc *checkoutUseCase) CompleteCheckout(ctx context.Context, sessionID string) (*model.Order, error) {
	return uc.orders.MarkPaidBySession(ctx, sessionID)
}

func (uc *checkoutUseCase) NotifyMe(ctx context.Context, email string) error {
	if _, err := uc.customers.OptInLaunchNotify(ctx, email); err != nil {
		return err
	}

	// The newsletter signup is secondary; an opted-in customer without a
	// subscription is still a success.
	if _, err := uc.subscribers.Subscribe(ctx, email, "notify_me"); err != nil {
		uc.logger.Warn("notify-me newsletter signup failed",
			zap.String("email", email), zap.Error(err))
	}
	return nil
}
