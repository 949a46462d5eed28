// Package business takes in inquiries from companies that want recurring
// pickup service. Intake only; sales follow up outside the system.
package business

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/laundryhub/pkg/models"
)

var ErrMissingContact = errors.New("company name, contact name and email are required")

type Store interface {
	CreateBusinessInquiry(ctx context.Context, inquiry *models.BusinessInquiry) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) SubmitInquiry(ctx context.Context, inquiry *models.BusinessInquiry) (*models.BusinessInquiry, error) {
	if inquiry.CompanyName == "" || inquiry.ContactName == "" || inquiry.Email == "" {
		return nil, ErrMissingContact
	}

	inquiry.ID = uuid.New().String()
	inquiry.CreatedAt = time.Now()
	if err := s.store.CreateBusinessInquiry(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}
