package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest, sellerEmail string, price float64) (model.Book, error) {
	status := req.Status
	if status == "" {
		status = model.BookStatusPublished
	}
	query, args, err := qb.Insert(booksTableName).
		Columns("id", "title", "author", "image_url", "price", "quantity", "status", "seller_email", "created_at").
		Values(uuid.NewString(), req.Title, req.Author, req.Image, price, req.Quantity, status, sellerEmail, time.Now().UTC()).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Error(err))
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id string) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "image_url", "price", "quantity", "status", "seller_email", "created_at").
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "image_url", "price", "quantity", "status", "seller_email", "created_at").
		From(booksTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// DecrementQuantity issues the single conditional update guarding stock.
// It never goes below zero: the returned bool reports whether a unit was
// actually taken.
func (r *repository) DecrementQuantity(ctx context.Context, bookID string) (bool, error) {
	q := `
update books
    set quantity = quantity - 1
where id = $1 and quantity > 0`
	res, err := r.db.ExecContext(ctx, q, bookID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
