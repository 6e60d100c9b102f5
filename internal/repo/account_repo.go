package repo

import (
	"context"
	"errors"

	"github.com/bookstore/storefront/internal/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound is returned when a customer is not found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCustomerExists is returned when the username or email is taken
	ErrCustomerExists = errors.New("customer already exists")
)

// AccountRepository handles customer accounts
type AccountRepository struct {
	db  *db.DB
	log *zap.Logger
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(database *db.DB, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:  database,
		log: logger,
	}
}

// CreateCustomer stores a new customer. Username and email must be unused.
func (r *AccountRepository) CreateCustomer(ctx context.Context, customer *db.Customer) error {
	query := r.db.WithContext(ctx).Model(&db.Customer{}).Where("username = ?", customer.Username)
	if customer.Email != nil {
		query = query.Or("email = ?", *customer.Email)
	}

	var taken int64
	if err := query.Count(&taken).Error; err != nil {
		r.log.Error("Failed to check customer existence", zap.String("username", customer.Username), zap.Error(err))
		return err
	}
	if taken > 0 {
		return ErrCustomerExists
	}

	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		r.log.Error("Failed to create customer", zap.String("username", customer.Username), zap.Error(err))
		return err
	}

	r.log.Info("Customer created", zap.Uint("customer_id", customer.ID), zap.String("username", customer.Username))
	return nil
}

// FindByUsername retrieves a customer by username
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*db.Customer, error) {
	return r.find(ctx, "username = ?", username)
}

// FindByID retrieves a customer by id
func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*db.Customer, error) {
	return r.find(ctx, "id = ?", id)
}

func (r *AccountRepository) find(ctx context.Context, cond string, arg interface{}) (*db.Customer, error) {
	var customer db.Customer
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		r.log.Error("Failed to get customer", zap.Error(err))
		return nil, err
	}
	return &customer, nil
}
