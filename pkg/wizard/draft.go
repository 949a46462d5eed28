// Package wizard carries an order draft through the booking steps: service,
// items, address, schedule, confirmation. A draft created at any step is valid;
// steps a customer skipped simply stay unset and the draft reports itself
// incomplete until they are filled in.
package wizard

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/laundryhub/pkg/cart"
)

var (
	ErrDeliveryBeforePickup = errors.New("delivery must be after pickup")
	ErrScheduleIncomplete   = errors.New("pickup and delivery times are required")
	ErrDraftIncomplete      = errors.New("draft is missing required steps")
	ErrUnknownService       = errors.New("unknown service")
	ErrItemOutsideService   = errors.New("item is not offered by the selected service")
)

type Step string

const (
	StepService  Step = "service"
	StepItems    Step = "items"
	StepAddress  Step = "address"
	StepSchedule Step = "schedule"
)

type Address struct {
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (a Address) filled() bool {
	return a.Street != "" && a.City != "" && a.PostalCode != ""
}

type Schedule struct {
	PickupAt         time.Time `json:"pickup_at"`
	DeliveryAt       time.Time `json:"delivery_at"`
	PickupHandling   string    `json:"pickup_handling,omitempty"`
	DeliveryHandling string    `json:"delivery_handling,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

// Validate enforces the one scheduling rule: delivery strictly after pickup.
func (s Schedule) Validate() error {
	if s.PickupAt.IsZero() || s.DeliveryAt.IsZero() {
		return ErrScheduleIncomplete
	}
	if !s.DeliveryAt.After(s.PickupAt) {
		return ErrDeliveryBeforePickup
	}
	return nil
}

type Draft struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	ServiceID  string     `json:"service_id,omitempty"`
	Cart       *cart.Cart `json:"cart"`
	Address    *Address   `json:"address,omitempty"`
	Schedule   *Schedule  `json:"schedule,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewDraft(customerID string) *Draft {
	now := time.Now()
	return &Draft{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Cart:       cart.New(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MissingSteps lists the steps still blocking confirmation, in wizard order.
func (d *Draft) MissingSteps() []Step {
	var missing []Step
	if d.ServiceID == "" {
		missing = append(missing, StepService)
	}
	if d.Cart == nil || d.Cart.IsEmpty() {
		missing = append(missing, StepItems)
	}
	if d.Address == nil || !d.Address.filled() {
		missing = append(missing, StepAddress)
	}
	if d.Schedule == nil || d.Schedule.Validate() != nil {
		missing = append(missing, StepSchedule)
	}
	return missing
}

// Complete reports whether every step is filled and valid.
func (d *Draft) Complete() bool {
	return len(d.MissingSteps()) == 0
}
