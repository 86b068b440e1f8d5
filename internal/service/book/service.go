package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/money"
)

type Repository interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest, sellerEmail string, price float64) (model.Book, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
}

type Service struct {
	log  *zap.Logger
	repo Repository
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

func (s *Service) CreateBook(ctx context.Context, req model.CreateBookRequest, sellerEmail string) (model.Book, error) {
	price, err := money.Normalize(req.Price)
	if err != nil {
		return model.Book{}, err
	}
	return s.repo.CreateBook(ctx, req, sellerEmail, price)
}

func (s *Service) GetBook(ctx context.Context, id string) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.repo.ListBooks(ctx)
}
