// Package notify dispatches customer-facing notifications off the request
// path. Order events are handed to an actor so a slow mail/SMS provider never
// delays the HTTP response that triggered it.
package notify

import (
	"fmt"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"github.com/example/laundryhub/pkg/models"
)

// Messages

type OrderSubmitted struct {
	OrderID    string
	CustomerID string
	Total      string
	PickupAt   string
}

type OrderStatusChanged struct {
	OrderID    string
	CustomerID string
	Status     models.OrderStatus
}

type PaymentFailed struct {
	OrderID    string
	CustomerID string
	Reason     string
}

type QuoteReady struct {
	QuoteID    string
	CustomerID string
	Amount     string
}

// NotificationActor turns order events into outbound notifications. Delivery
// is logged here; the actual mail/SMS provider hangs off the same messages.
type NotificationActor struct {
	logger *zap.Logger
}

func (a *NotificationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OrderSubmitted:
		a.logger.Info("Order confirmation notification",
			zap.String("order_id", msg.OrderID),
			zap.String("customer_id", msg.CustomerID),
			zap.String("total", msg.Total),
			zap.String("pickup_at", msg.PickupAt))

	case *OrderStatusChanged:
		a.logger.Info("Order status notification",
			zap.String("order_id", msg.OrderID),
			zap.String("customer_id", msg.CustomerID),
			zap.String("status", string(msg.Status)))

	case *PaymentFailed:
		a.logger.Warn("Payment failure notification",
			zap.String("order_id", msg.OrderID),
			zap.String("customer_id", msg.CustomerID),
			zap.String("reason", msg.Reason))

	case *QuoteReady:
		a.logger.Info("Quote ready notification",
			zap.String("quote_id", msg.QuoteID),
			zap.String("customer_id", msg.CustomerID),
			zap.String("amount", msg.Amount))

	case *actor.Started:
		a.logger.Info("Notification actor started")

	case *actor.Stopping:
		a.logger.Info("Notification actor stopping")

	case *actor.Stopped:
		a.logger.Info("Notification actor stopped")
	}
}

// Notifier owns the actor system and exposes fire-and-forget sends.
type Notifier struct {
	system *actor.ActorSystem
	pid    *actor.PID
}

func NewNotifier(logger *zap.Logger) (*Notifier, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &NotificationActor{logger: logger.Named("notification-actor")}
	})
	pid, err := system.Root.SpawnNamed(props, "notification-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn notification actor: %w", err)
	}

	return &Notifier{system: system, pid: pid}, nil
}

func (n *Notifier) Send(msg interface{}) {
	n.system.Root.Send(n.pid, msg)
}

func (n *Notifier) Shutdown() {
	n.system.Root.Stop(n.pid)
	n.system.Shutdown()
}
