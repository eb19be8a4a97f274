package usecase

import (
	"context"
	"time"

	"storefront/internal/data/entity"

	"github.com/google/uuid"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	created []*entity.User
	err     error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.err != nil {
		return f.err
	}
	if f.byEmail == nil {
		f.byEmail = map[string]*entity.User{}
	}
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	var users []*entity.User
	for _, user := range f.byEmail {
		users = append(users, user)
	}
	return users, nil
}

type fakeOrderRepo struct {
	orders map[uuid.UUID]*entity.Order
	items  map[uuid.UUID][]entity.OrderItem

	created          []*entity.Order
	lastStatusFilter entity.OrderStatus

	// updateStatusFn overrides the default compare-and-swap when set.
	updateStatusFn func(orderID uuid.UUID, from, to entity.OrderStatus) (bool, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if f.orders == nil {
		f.orders = map[uuid.UUID]*entity.Order{}
	}
	f.orders[order.ID] = order
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orders []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	f.lastStatusFilter = status
	var orders []*entity.Order
	for _, order := range f.orders {
		if status == "" || order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) FindItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	return f.items[orderID], nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to entity.OrderStatus, updatedAt time.Time) (bool, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(orderID, from, to)
	}

	order := f.orders[orderID]
	if order == nil || order.Status != from {
		return false, nil
	}
	order.Status = to
	order.UpdatedAt = updatedAt
	return true, nil
}

type fakeProductRepo struct {
	byID    map[uuid.UUID]*entity.Product
	deleted []uuid.UUID
	updated []*entity.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if f.byID == nil {
		f.byID = map[uuid.UUID]*entity.Product{}
	}
	f.byID[product.ID] = product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.byID[id], nil
}

func (f *fakeProductRepo) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Product, error) {
	product := f.byID[id]
	if product == nil || product.UserID != ownerID {
		return nil, nil
	}
	return product, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range f.byID {
		products = append(products, product)
	}
	return products, nil
}

func (f *fakeProductRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product
	for _, product := range f.byID {
		if product.UserID == ownerID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.byID[product.ID] = product
	f.updated = append(f.updated, product)
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}
