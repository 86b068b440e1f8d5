package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/ShahriarRefat0/Book2Door-server/internal/errs"
	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
)

func (r *repository) ResolveRole(ctx context.Context, email string) (model.Role, error) {
	query, args, err := qb.Select("role").
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", err
	}
	var role model.Role
	if err := r.db.GetContext(ctx, &role, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", errs.ErrUnauthorized
		}
		return "", err
	}
	return role, nil
}
