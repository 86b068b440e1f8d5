// Package auth carries the verified principal through the request context.
// Token verification itself is the identity provider's job; we only parse
// the claims and trust the email they carry.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

type Config struct {
	Key string `yaml:"key" envconfig:"JWT_KEY"`
}

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type ctxKey int

const (
	emailKey ctxKey = iota + 1
)

func SetAuthContext(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// EmailFromContext returns the verified principal email set by the auth middleware.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

func EmailFromCtxOrErr(ctx context.Context) (string, error) {
	email, ok := EmailFromContext(ctx)
	if !ok {
		return "", errors.New("no principal in request context")
	}
	return email, nil
}
