package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

const orderColumns = "id, book_id, book_title, customer_email, seller_email, quantity, price, order_status, payment_status, transaction_id, created_at, paid_at"

// isUniqueViolation reports whether err is the orders.transaction_id
// uniqueness constraint firing, i.e. a concurrent commit won the race.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *repository) CreateOrder(ctx context.Context, order model.Order) (model.Order, error) {
	query, args, err := qb.Insert(ordersTableName).
		Columns("id", "book_id", "book_title", "customer_email", "seller_email",
			"quantity", "price", "order_status", "payment_status", "transaction_id", "created_at", "paid_at").
		Values(order.ID, order.BookID, order.BookTitle, order.CustomerEmail, order.SellerEmail,
			order.Quantity, order.Price, order.OrderStatus, order.PaymentStatus, order.TransactionID, order.CreatedAt, order.PaidAt).
		Suffix("returning " + orderColumns).
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var created model.Order
	if err := r.db.GetContext(ctx, &created, query, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Order{}, errs.ErrDuplicateTransaction
		}
		r.log.Error("CreateOrder", zap.String("q", query), zap.Error(err))
		return model.Order{}, err
	}
	return created, nil
}

func (r *repository) GetOrder(ctx context.Context, id string) (model.Order, error) {
	query, args, err := qb.Select(orderColumns).
		From(ordersTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var order model.Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		return model.Order{}, err
	}
	return order, nil
}

func (r *repository) GetOrderByTransactionID(ctx context.Context, transactionID string) (model.Order, error) {
	query, args, err := qb.Select(orderColumns).
		From(ordersTableName).
		Where(sq.Eq{"transaction_id": transactionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var order model.Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		return model.Order{}, err
	}
	return order, nil
}

func (r *repository) ListOrdersByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	query, args, err := qb.Select(orderColumns).
		From(ordersTableName).
		Where(sq.Eq{"customer_email": email}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) MarkOrderPaid(ctx context.Context, orderID, transactionID string, paidAt time.Time) (model.Order, error) {
	query, args, err := qb.Update(ordersTableName).
		Set("payment_status", model.PaymentStatusPaid).
		Set("transaction_id", transactionID).
		Set("paid_at", paidAt).
		Where(sq.Eq{"id": orderID}).
		Suffix("returning " + orderColumns).
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var order model.Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Order{}, errs.ErrDuplicateTransaction
		}
		return model.Order{}, err
	}
	return order, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	query, args, err := qb.Update(ordersTableName).
		Set("order_status", status).
		Where(sq.Eq{"id": orderID}).
		Suffix("returning " + orderColumns).
		ToSql()
	if err != nil {
		return model.Order{}, err
	}
	var order model.Order
	if err := r.db.GetContext(ctx, &order, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, errs.ErrNotFound
		}
		return model.Order{}, err
	}
	return order, nil
}
