// Package orders turns a completed wizard draft into a persisted order and a
// payment checkout session, and owns the order lifecycle from then on.
package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/models"
	"github.com/example/laundryhub/pkg/notify"
	"github.com/example/laundryhub/pkg/payment"
	"github.com/example/laundryhub/pkg/pricing"
	"github.com/example/laundryhub/pkg/repository"
	"github.com/example/laundryhub/pkg/wizard"
)

// ErrPaymentSession means the order row exists but no checkout session could
// be created. The order stays pending; payment can be retried on its own.
var ErrPaymentSession = errors.New("order saved but payment session failed")

type Store interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context, customerID string, page, pageSize int) ([]models.Order, int64, error)
	UpdateOrderStatus(ctx context.Context, order *models.Order) error
	UpdateOrderCheckoutURL(ctx context.Context, orderID, checkoutURL string) error
}

type Gateway interface {
	CreateSession(ctx context.Context, amount decimal.Decimal, description string) (*payment.Session, error)
}

type SummaryCache interface {
	CacheOrderSummary(ctx context.Context, summary *repository.OrderSummary) error
	GetOrderSummary(ctx context.Context, orderID string) (*repository.OrderSummary, error)
	InvalidateOrderSummary(ctx context.Context, orderID string) error
}

type Auditor interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
	GetAuditLogs(ctx context.Context, orderID string, limit int64) ([]*repository.AuditLog, error)
}

type Notifier interface {
	Send(msg interface{})
}

type Service struct {
	store    Store
	gateway  Gateway
	cache    SummaryCache
	auditor  Auditor
	notifier Notifier
	currency string
	logger   *zap.Logger
}

func NewService(store Store, gateway Gateway, cache SummaryCache, auditor Auditor, notifier Notifier, currency string, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		gateway:  gateway,
		cache:    cache,
		auditor:  auditor,
		notifier: notifier,
		currency: currency,
		logger:   logger,
	}
}

// Submit persists the draft as a pending order, then requests a checkout
// session. A failed insert aborts; a failed session leaves the order pending
// with no payment attached and returns ErrPaymentSession alongside the order.
// There is no compensating delete in that case, reconciliation reads the
// audit trail.
func (s *Service) Submit(ctx context.Context, draft *wizard.Draft) (*models.Order, error) {
	if !draft.Complete() {
		return nil, fmt.Errorf("%w: %v", wizard.ErrDraftIncomplete, draft.MissingSteps())
	}

	breakdown := pricing.Compute(draft.Cart.TotalAmount())

	now := time.Now()
	order := &models.Order{
		ID:               uuid.New().String(),
		CustomerID:       draft.CustomerID,
		ServiceID:        draft.ServiceID,
		PickupStreet:     draft.Address.Street,
		PickupCity:       draft.Address.City,
		PickupPostcode:   draft.Address.PostalCode,
		PickupAt:         draft.Schedule.PickupAt,
		DeliveryAt:       draft.Schedule.DeliveryAt,
		PickupHandling:   draft.Schedule.PickupHandling,
		DeliveryHandling: draft.Schedule.DeliveryHandling,
		Notes:            draft.Schedule.Notes,
		Subtotal:         breakdown.Subtotal,
		Tax:              breakdown.Tax,
		Shipping:         breakdown.Shipping,
		Total:            breakdown.Total,
		Currency:         s.currency,
		Status:           models.OrderStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for _, line := range draft.Cart.SortedLines() {
		order.Items = append(order.Items, models.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ItemID:    line.Item.ID,
			Name:      line.Item.Name,
			UnitPrice: line.Item.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, err
	}

	s.cacheSummary(ctx, order)
	s.audit(order.ID, "order_submitted", bson.M{
		"customer_id": order.CustomerID,
		"subtotal":    order.Subtotal.StringFixed(2),
		"total":       order.Total.StringFixed(2),
		"item_lines":  len(order.Items),
	})
	s.notifier.Send(&notify.OrderSubmitted{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total.StringFixed(2),
		PickupAt:   order.PickupAt.Format(time.RFC3339),
	})

	if err := s.createSession(ctx, order); err != nil {
		return order, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}
	return order, nil
}

// RetryPayment creates a fresh checkout session for an order whose first
// session failed or expired. The order itself is not re-inserted.
func (s *Service) RetryPayment(ctx context.Context, orderID, customerID string) (*models.Order, error) {
	order, err := s.Get(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusPending {
		return nil, models.ErrInvalidTransition
	}

	if err := s.createSession(ctx, order); err != nil {
		return order, fmt.Errorf("%w: %v", ErrPaymentSession, err)
	}
	return order, nil
}

func (s *Service) createSession(ctx context.Context, order *models.Order) error {
	description := fmt.Sprintf("Laundry order %s", order.ID)
	session, err := s.gateway.CreateSession(ctx, order.Total, description)
	if err != nil {
		s.logger.Warn("Payment session failed, order stays pending",
			zap.String("order_id", order.ID), zap.Error(err))
		s.audit(order.ID, "payment_session_failed", bson.M{"error": err.Error()})
		s.notifier.Send(&notify.PaymentFailed{
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Reason:     err.Error(),
		})
		return err
	}

	order.CheckoutURL = session.CheckoutURL
	if err := s.store.UpdateOrderCheckoutURL(ctx, order.ID, session.CheckoutURL); err != nil {
		// The session is still usable, the URL just is not on the row.
		s.logger.Warn("Failed to store checkout url", zap.String("order_id", order.ID), zap.Error(err))
	}
	s.audit(order.ID, "payment_session_created", bson.M{"session_id": session.ID})
	return nil
}

// Get returns the order only if it belongs to customerID. A mismatch looks
// like a missing order so IDs cannot be enumerated.
func (s *Service) Get(ctx context.Context, orderID, customerID string) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

// Summary answers status polls from the Redis projection, falling back to
// MySQL on a miss and re-priming the cache from the row it read.
func (s *Service) Summary(ctx context.Context, orderID, customerID string) (*repository.OrderSummary, error) {
	summary, err := s.cache.GetOrderSummary(ctx, orderID)
	if err == nil {
		if summary.CustomerID != customerID {
			return nil, repository.ErrNotFound
		}
		return summary, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("Order summary cache read failed", zap.String("order_id", orderID), zap.Error(err))
	}

	order, err := s.Get(ctx, orderID, customerID)
	if err != nil {
		return nil, err
	}
	s.cacheSummary(ctx, order)
	return &repository.OrderSummary{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Total:      order.Total.StringFixed(2),
	}, nil
}

// AuditTrail lists an order's audit entries, newest first. Operations-side;
// pending orders with a failed payment session are reconciled from here.
func (s *Service) AuditTrail(ctx context.Context, orderID string, limit int64) ([]*repository.AuditLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if _, err := s.store.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.auditor.GetAuditLogs(ctx, orderID, limit)
}

func (s *Service) List(ctx context.Context, customerID string, page, pageSize int) ([]models.Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.store.ListOrders(ctx, customerID, page, pageSize)
}

// UpdateStatus advances the lifecycle on behalf of operations staff.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, target models.OrderStatus) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.store.UpdateOrderStatus(ctx, order); err != nil {
		return nil, err
	}

	s.cache.InvalidateOrderSummary(ctx, order.ID)
	s.audit(order.ID, "status_changed", bson.M{"status": string(order.Status)})
	s.notifier.Send(&notify.OrderStatusChanged{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
	})
	return order, nil
}

// Cancel is the customer-facing cancellation, bound by the same guards.
func (s *Service) Cancel(ctx context.Context, orderID, customerID string) (*models.Order, error) {
	if _, err := s.Get(ctx, orderID, customerID); err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, orderID, models.OrderStatusCancelled)
}

func (s *Service) cacheSummary(ctx context.Context, order *models.Order) {
	err := s.cache.CacheOrderSummary(ctx, &repository.OrderSummary{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Total:      order.Total.StringFixed(2),
	})
	if err != nil {
		s.logger.Warn("Failed to cache order summary", zap.String("order_id", order.ID), zap.Error(err))
	}
}

func (s *Service) audit(orderID, action string, data bson.M) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := s.auditor.CreateAuditLog(ctx, &repository.AuditLog{
			Action:  action,
			OrderID: orderID,
			Data:    data,
		})
		if err != nil {
			s.logger.Warn("Failed to write audit log", zap.String("order_id", orderID), zap.Error(err))
		}
	}()
}
