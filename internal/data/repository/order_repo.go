package repository

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Create writes the order and its line items in one transaction.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	// FindAll returns every order, newest first, with the owner email joined
	// in. status narrows the result when non-empty.
	FindAll(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error)
	FindItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error)
	// UpdateStatus moves an order from one status to another in a single
	// conditional update. It reports false when the order was not in the
	// expected status anymore, so exactly one of two racing transitions wins.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to entity.OrderStatus, updatedAt time.Time) (bool, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (or *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, user_id, total_price, status, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.TotalPrice,
		order.Status,
		order.Phone,
		order.Address,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		or.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order for user %s: %w", order.UserID.String(), err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, item := range order.Items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID,
			order.ID,
			item.ProductID,
			item.Quantity,
			item.Price,
		); err != nil {
			or.log.Error("Failed to create order item",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID.String()),
			)
			return fmt.Errorf("create order item %s: %w", item.ProductID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", order.ID.String(), err)
	}

	return nil
}

func (or *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT id, user_id, total_price, status, phone, address, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order entity.Order
	err := or.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalPrice,
		&order.Status,
		&order.Phone,
		&order.Address,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		or.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

func (or *orderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	query := `
		SELECT id, user_id, total_price, status, phone, address, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := or.db.Query(ctx, query, userID)
	if err != nil {
		or.log.Error("Failed to get orders by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find orders for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalPrice,
			&order.Status,
			&order.Phone,
			&order.Address,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders rows: %w", err)
	}

	return orders, nil
}

func (or *orderRepository) FindAll(ctx context.Context, status entity.OrderStatus) ([]*entity.Order, error) {
	query := `
		SELECT o.id, o.user_id, o.total_price, o.status, o.phone, o.address,
		       o.created_at, o.updated_at, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
	`

	var args []any
	if status != "" {
		query += ` WHERE o.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		or.log.Error("Failed to get all orders",
			zap.Error(err),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find all orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalPrice,
			&order.Status,
			&order.Phone,
			&order.Address,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders rows: %w", err)
	}

	return orders, nil
}

func (or *orderRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price, p.name, p.image
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = $1
	`

	rows, err := or.db.Query(ctx, query, orderID)
	if err != nil {
		or.log.Error("Failed to get order items",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find items for order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.Price,
			&item.ProductName,
			&item.ProductImage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items rows: %w", err)
	}

	return items, nil
}

func (or *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to entity.OrderStatus, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	result, err := or.db.Exec(ctx, query, orderID, from, to, updatedAt)
	if err != nil {
		or.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update order %s status to %s: %w", orderID.String(), to, err)
	}

	return result.RowsAffected() > 0, nil
}
