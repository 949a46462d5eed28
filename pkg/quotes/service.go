// Package quotes handles request-a-quote for catalog items that have no fixed
// unit price. A request moves requested -> quoted -> accepted or declined.
package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/laundryhub/pkg/catalog"
	"github.com/example/laundryhub/pkg/models"
	"github.com/example/laundryhub/pkg/notify"
	"github.com/example/laundryhub/pkg/repository"
)

var (
	// ErrFixedPrice rejects quote requests for items that already carry a
	// price; those go straight into the cart.
	ErrFixedPrice   = errors.New("item has a fixed price and needs no quote")
	ErrUnknownItem  = errors.New("unknown catalog item")
	ErrQuoteNotOpen = errors.New("quote is not awaiting a response")
	ErrNotQuoted    = errors.New("quote has no amount to accept yet")
)

type Store interface {
	CreateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error
	GetQuoteRequest(ctx context.Context, id string) (*models.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context, customerID string) ([]models.QuoteRequest, error)
	UpdateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error
}

type Notifier interface {
	Send(msg interface{})
}

type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

func (s *Service) Request(ctx context.Context, customerID, itemID, description string) (*models.QuoteRequest, error) {
	item, ok := catalog.ItemByID(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	if !item.QuoteRequired {
		return nil, ErrFixedPrice
	}

	now := time.Now()
	quote := &models.QuoteRequest{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		ItemID:      item.ID,
		ItemName:    item.Name,
		Description: description,
		Status:      models.QuoteStatusRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateQuoteRequest(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

func (s *Service) List(ctx context.Context, customerID string) ([]models.QuoteRequest, error) {
	return s.store.ListQuoteRequests(ctx, customerID)
}

// Respond is the staff side: attach an amount and mark the quote as quoted.
func (s *Service) Respond(ctx context.Context, quoteID string, amount decimal.Decimal) (*models.QuoteRequest, error) {
	quote, err := s.store.GetQuoteRequest(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != models.QuoteStatusRequested {
		return nil, ErrQuoteNotOpen
	}

	quote.Amount = amount
	quote.Status = models.QuoteStatusQuoted
	if err := s.store.UpdateQuoteRequest(ctx, quote); err != nil {
		return nil, err
	}

	s.notifier.Send(&notify.QuoteReady{
		QuoteID:    quote.ID,
		CustomerID: quote.CustomerID,
		Amount:     quote.Amount.StringFixed(2),
	})
	return quote, nil
}

func (s *Service) Accept(ctx context.Context, quoteID, customerID string) (*models.QuoteRequest, error) {
	return s.resolve(ctx, quoteID, customerID, models.QuoteStatusAccepted)
}

func (s *Service) Decline(ctx context.Context, quoteID, customerID string) (*models.QuoteRequest, error) {
	return s.resolve(ctx, quoteID, customerID, models.QuoteStatusDeclined)
}

func (s *Service) resolve(ctx context.Context, quoteID, customerID string, status models.QuoteStatus) (*models.QuoteRequest, error) {
	quote, err := s.store.GetQuoteRequest(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.CustomerID != customerID {
		return nil, repository.ErrNotFound
	}
	if quote.Status != models.QuoteStatusQuoted {
		return nil, ErrNotQuoted
	}

	quote.Status = status
	if err := s.store.UpdateQuoteRequest(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}
