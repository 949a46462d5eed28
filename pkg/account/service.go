// Package account serves the profile and address book behind the account
// pages.
package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/laundryhub/pkg/models"
)

type Store interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id, name, email, phone string) (*models.Customer, error)
	CreateAddress(ctx context.Context, address *models.Address) error
	GetAddress(ctx context.Context, id, customerID string) (*models.Address, error)
	ListAddresses(ctx context.Context, customerID string) ([]models.Address, error)
	DeleteAddress(ctx context.Context, id, customerID string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Profile(ctx context.Context, customerID string) (*models.Customer, error) {
	return s.store.GetCustomer(ctx, customerID)
}

// UpdateProfile applies only the fields the customer filled in.
func (s *Service) UpdateProfile(ctx context.Context, customerID, name, email, phone string) (*models.Customer, error) {
	return s.store.UpdateCustomer(ctx, customerID, name, email, phone)
}

func (s *Service) AddAddress(ctx context.Context, customerID, label, street, city, postalCode string) (*models.Address, error) {
	now := time.Now()
	address := &models.Address{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Label:      label,
		Street:     street,
		City:       city,
		PostalCode: postalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.CreateAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *Service) Addresses(ctx context.Context, customerID string) ([]models.Address, error) {
	return s.store.ListAddresses(ctx, customerID)
}

func (s *Service) Address(ctx context.Context, id, customerID string) (*models.Address, error) {
	return s.store.GetAddress(ctx, id, customerID)
}

func (s *Service) RemoveAddress(ctx context.Context, id, customerID string) error {
	return s.store.DeleteAddress(ctx, id, customerID)
}
