package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/example/laundryhub/pkg/config"
	"github.com/example/laundryhub/pkg/models"
)

// Store is the MySQL-backed persistence layer for everything that outlives a
// wizard draft: customers, addresses, orders, quotes and business inquiries.
type Store struct {
	db *gorm.DB
}

func NewStore(cfg *config.MySQLConfig) (*Store, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.QuoteRequest{},
		&models.BusinessInquiry{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm handle, used by tests.
func NewStoreWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateOrder inserts the order row and one row per line item in a single
// transaction via the Items association.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, customerID string, page, pageSize int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID)
	query.Count(&total)

	offset := (page - 1) * pageSize
	err := query.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(pageSize).Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, order *models.Order) error {
	updates := map[string]interface{}{
		"status":     order.Status,
		"updated_at": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(order).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (s *Store) UpdateOrderCheckoutURL(ctx context.Context, orderID, checkoutURL string) error {
	updates := map[string]interface{}{
		"checkout_url": checkoutURL,
		"updated_at":   time.Now(),
	}
	err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update checkout url: %w", err)
	}
	return nil
}

func (s *Store) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer applies the non-empty fields only.
func (s *Store) UpdateCustomer(ctx context.Context, id string, name, email, phone string) (*models.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if name != "" {
		updates["name"] = name
	}
	if email != "" {
		updates["email"] = email
	}
	if phone != "" {
		updates["phone"] = phone
	}

	if err := s.db.WithContext(ctx).Model(customer).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}

func (s *Store) CreateAddress(ctx context.Context, address *models.Address) error {
	if err := s.db.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (s *Store) GetAddress(ctx context.Context, id, customerID string) (*models.Address, error) {
	var address models.Address
	err := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}
	return &address, nil
}

func (s *Store) ListAddresses(ctx context.Context, customerID string) ([]models.Address, error) {
	var addresses []models.Address
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).Order("created_at").Find(&addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *Store) DeleteAddress(ctx context.Context, id, customerID string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", id, customerID).Delete(&models.Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CreateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error {
	if err := s.db.WithContext(ctx).Create(quote).Error; err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}
	return nil
}

func (s *Store) GetQuoteRequest(ctx context.Context, id string) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	return &quote, nil
}

func (s *Store) ListQuoteRequests(ctx context.Context, customerID string) ([]models.QuoteRequest, error) {
	var quotes []models.QuoteRequest
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).Order("created_at DESC").Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	return quotes, nil
}

func (s *Store) UpdateQuoteRequest(ctx context.Context, quote *models.QuoteRequest) error {
	updates := map[string]interface{}{
		"status":     quote.Status,
		"amount":     quote.Amount,
		"updated_at": time.Now(),
	}
	if err := s.db.WithContext(ctx).Model(quote).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update quote request: %w", err)
	}
	return nil
}

func (s *Store) CreateBusinessInquiry(ctx context.Context, inquiry *models.BusinessInquiry) error {
	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("failed to create business inquiry: %w", err)
	}
	return nil
}
