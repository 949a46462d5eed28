package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPickedUp   OrderStatus = "picked_up"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// nextStatus is the forward progression of the laundry lifecycle. Cancellation
// is handled separately because it is only reachable early.
var nextStatus = map[OrderStatus]OrderStatus{
	OrderStatusPending:    OrderStatusConfirmed,
	OrderStatusConfirmed:  OrderStatusPickedUp,
	OrderStatusPickedUp:   OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusReady,
	OrderStatusReady:      OrderStatusDelivered,
}

type Order struct {
	ID               string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CustomerID       string          `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	ServiceID        string          `gorm:"type:varchar(40);not null" json:"service_id"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	PickupStreet     string          `gorm:"type:varchar(255)" json:"pickup_street"`
	PickupCity       string          `gorm:"type:varchar(100)" json:"pickup_city"`
	PickupPostcode   string          `gorm:"type:varchar(20)" json:"pickup_postcode"`
	PickupAt         time.Time       `json:"pickup_at"`
	DeliveryAt       time.Time       `json:"delivery_at"`
	PickupHandling   string          `gorm:"type:varchar(40)" json:"pickup_handling"`
	DeliveryHandling string          `gorm:"type:varchar(40)" json:"delivery_handling"`
	Notes            string          `gorm:"type:text" json:"notes"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	Tax              decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax"`
	Shipping         decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Currency         string          `gorm:"type:varchar(3)" json:"currency"`
	Status           OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CheckoutURL      string          `gorm:"type:varchar(512)" json:"checkout_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one cart line frozen into the order: name and unit price are
// copied from the catalog at submission time so later catalog edits do not
// rewrite history.
type OrderItem struct {
	ID        string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ItemID    string          `gorm:"type:varchar(40);not null" json:"item_id"`
	Name      string          `gorm:"type:varchar(100)" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// Advance moves the order one step along the lifecycle.
func (o *Order) Advance() error {
	next, ok := nextStatus[o.Status]
	if !ok {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// TransitionTo sets an explicit target status, refusing jumps that skip a step
// or resurrect a terminal order.
func (o *Order) TransitionTo(target OrderStatus) error {
	if target == OrderStatusCancelled {
		return o.Cancel()
	}
	if nextStatus[o.Status] != target {
		return ErrInvalidTransition
	}
	o.Status = target
	return nil
}

// Cancel is only allowed before the driver is on the way.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusConfirmed {
		return ErrNotCancellable
	}
	o.Status = OrderStatusCancelled
	return nil
}
