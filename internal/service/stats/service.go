// Package stats computes the role-scoped aggregates. It owns no state:
// every view is a read/reduce over the shared stores, and a single
// unnormalizable amount aborts the whole aggregate rather than skewing it.
package stats

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ShahriarRefat0/Book2Door-server/internal/model"
	"github.com/ShahriarRefat0/Book2Door-server/internal/repository"
	"github.com/ShahriarRefat0/Book2Door-server/pkg/money"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type Repository interface {
	CountBooks(ctx context.Context, sellerEmail string) (int, error)
	CountUsers(ctx context.Context) (int, error)
	CountOrders(ctx context.Context, f repository.OrderFilter) (int, error)
	PaidOrderAmounts(ctx context.Context, f repository.OrderFilter) ([]string, error)
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

func (s *Service) AdminStats(ctx context.Context) (model.AdminStats, error) {
	var st model.AdminStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalBooks, err = s.repo.CountBooks(ctx, "")
		return err
	})
	g.Go(func() (err error) {
		st.TotalOrders, err = s.repo.CountOrders(ctx, repository.OrderFilter{})
		return err
	})
	g.Go(func() (err error) {
		st.TotalUsers, err = s.repo.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.PendingOrders, err = s.repo.CountOrders(ctx, repository.OrderFilter{Status: model.OrderStatusPending})
		return err
	})
	g.Go(func() (err error) {
		st.TotalRevenue, err = s.revenue(ctx, repository.OrderFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return model.AdminStats{}, err
	}
	return st, nil
}

func (s *Service) LibrarianStats(ctx context.Context, sellerEmail string) (model.LibrarianStats, error) {
	var st model.LibrarianStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalBooks, err = s.repo.CountBooks(ctx, sellerEmail)
		return err
	})
	byStatus := []struct {
		status model.OrderStatus
		dst    *int
	}{
		{model.OrderStatusPending, &st.PendingOrders},
		{model.OrderStatusShipped, &st.ShippedOrders},
		{model.OrderStatusDelivered, &st.DeliveredOrders},
		{model.OrderStatusCancelled, &st.CancelledOrders},
	}
	for _, b := range byStatus {
		b := b
		g.Go(func() (err error) {
			*b.dst, err = s.repo.CountOrders(ctx, repository.OrderFilter{Status: b.status, SellerEmail: sellerEmail})
			return err
		})
	}
	g.Go(func() (err error) {
		st.TotalRevenue, err = s.revenue(ctx, repository.OrderFilter{SellerEmail: sellerEmail})
		return err
	})
	if err := g.Wait(); err != nil {
		return model.LibrarianStats{}, err
	}
	return st, nil
}

func (s *Service) CustomerStats(ctx context.Context, customerEmail string) (model.CustomerStats, error) {
	var st model.CustomerStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalOrders, err = s.repo.CountOrders(ctx, repository.OrderFilter{CustomerEmail: customerEmail})
		return err
	})
	g.Go(func() (err error) {
		st.ActiveOrders, err = s.repo.CountOrders(ctx, repository.OrderFilter{Status: model.OrderStatusShipped, CustomerEmail: customerEmail})
		return err
	})
	g.Go(func() (err error) {
		st.TotalSpent, err = s.revenue(ctx, repository.OrderFilter{CustomerEmail: customerEmail})
		return err
	})
	if err := g.Wait(); err != nil {
		return model.CustomerStats{}, err
	}
	return st, nil
}

// revenue sums normalized paid-order amounts for the given scope.
func (s *Service) revenue(ctx context.Context, f repository.OrderFilter) (float64, error) {
	amounts, err := s.repo.PaidOrderAmounts(ctx, f)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, raw := range amounts {
		v, err := money.Normalize(raw)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
