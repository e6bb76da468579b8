package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/i9team/guilherme-ecommerce/pkg/db/models"
	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/logger"
)

type productLoader interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes session-scoped cart operations.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, selection map[string]string) (*Cart, error)
	UpdateQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*Cart, error)
	RemoveItem(ctx context.Context, sessionID, lineKey string) (*Cart, error)
	Clear(ctx context.Context, sessionID string) (*Cart, error)
	Replace(ctx context.Context, sessionID string, cart *Cart) error
}

type service struct {
	storage  Storage
	products productLoader
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided storage and
// product source.
func NewService(storage Storage, products productLoader, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{storage: storage, products: products, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	cart, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// AddItem snapshots the product at add time and merges it into the cart.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID, quantity int, selection map[string]string) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	cart.AddItem(*product, quantity, selection)
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, lineKey string, quantity int) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(lineKey, quantity)
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, lineKey string) (*Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(lineKey)
	s.persist(ctx, sessionID, cart)
	return cart, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.storage.Delete(ctx, sessionID); err != nil {
		s.warnPersist(ctx, err)
	}
	return &Cart{}, nil
}

// Replace overwrites the stored snapshot wholesale. Checkout uses it after
// bump accepts that already went through the merge path.
func (s *service) Replace(ctx context.Context, sessionID string, cart *Cart) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	s.persist(ctx, sessionID, cart)
	return nil
}

// persist is best-effort: the mutation already happened in memory and the
// caller gets it back either way. A failed save costs durability, not
// correctness.
func (s *service) persist(ctx context.Context, sessionID string, cart *Cart) {
	if err := s.storage.Save(ctx, sessionID, cart); err != nil {
		s.warnPersist(ctx, err)
	}
}

func (s *service) warnPersist(ctx context.Context, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, "cart.persist.failed")
}
