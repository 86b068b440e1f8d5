package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

func (f OrderFilter) apply(q sq.SelectBuilder) sq.SelectBuilder {
	if f.Status != "" {
		q = q.Where(sq.Eq{"order_status": f.Status})
	}
	if f.SellerEmail != "" {
		q = q.Where(sq.Eq{"seller_email": f.SellerEmail})
	}
	if f.CustomerEmail != "" {
		q = q.Where(sq.Eq{"customer_email": f.CustomerEmail})
	}
	return q
}

func (r *repository) CountBooks(ctx context.Context, sellerEmail string) (int, error) {
	q := qb.Select("count(*)").From(booksTableName)
	if sellerEmail != "" {
		q = q.Where(sq.Eq{"seller_email": sellerEmail})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountUsers(ctx context.Context) (int, error) {
	query, args, err := qb.Select("count(*)").From(usersTableName).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountOrders(ctx context.Context, f OrderFilter) (int, error) {
	query, args, err := f.apply(qb.Select("count(*)").From(ordersTableName)).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

// PaidOrderAmounts returns the raw stored price of every paid order in scope.
// Prices are scanned as text on purpose: several generations of documents
// persisted them as decimal strings, and the aggregator normalizes each one
// instead of trusting an in-database sum over mixed representations.
func (r *repository) PaidOrderAmounts(ctx context.Context, f OrderFilter) ([]string, error) {
	query, args, err := f.apply(
		qb.Select("price::text").
			From(ordersTableName).
			Where(sq.Eq{"payment_status": model.PaymentStatusPaid}),
	).ToSql()
	if err != nil {
		return nil, err
	}
	var amounts []string
	if err := r.db.SelectContext(ctx, &amounts, query, args...); err != nil {
		return nil, err
	}
	return amounts, nil
}
