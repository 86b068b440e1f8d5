package errs

import (
	"errors"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrSessionNotFound      = errors.New("checkout session not found")
	ErrPaymentIncomplete    = errors.New("payment is not completed")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrOutOfStock           = errors.New("book is out of stock")
	ErrGateway              = errors.New("payment gateway error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")
)
