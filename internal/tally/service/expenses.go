package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/store"
	"github.com/aussiebroadwan/tally/pkg/apperr"
	"github.com/aussiebroadwan/tally/pkg/idx"
	"github.com/aussiebroadwan/tally/pkg/slogx"
)

var ErrExpenseNotFound = apperr.New(apperr.KindNotFound, "Expense not found")

// ExpenseService is plain CRUD over a user's own expenses. Every call is
// scoped by userID, so a foreign id behaves exactly like a missing one.
type ExpenseService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *ExpenseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ExpenseService) Create(ctx context.Context, userID string, in ExpenseInput) (domain.Expense, error) {
	f, err := in.parse()
	if err != nil {
		return domain.Expense{}, err
	}

	now := s.now()
	e := domain.Expense{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		CreatedAt: now,
	}
	f.apply(&e, now)

	if err := s.Store.Expenses().CreateExpense(ctx, e); err != nil {
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slogx.FromContext(ctx).Debug("expense created", slog.String("expense_id", e.ID))
	return e, nil
}

// List returns the requested page and the pagination block for it.
func (s *ExpenseService) List(ctx context.Context, userID string, q ListQuery) ([]domain.Expense, domain.Pagination, error) {
	rows, total, err := s.Store.Expenses().ListExpenses(ctx, userID, q.Filter)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("list expenses: %w", err)
	}
	return rows, domain.NewPagination(q.Page, q.Limit, total), nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (domain.Expense, error) {
	e, err := s.Store.Expenses().GetExpense(ctx, userID, id)
	if err != nil {
		return domain.Expense{}, mapExpenseErr(err, "get expense")
	}
	return e, nil
}

// Update replaces every mutable field; it is a full PUT, not a patch.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, in ExpenseInput) (domain.Expense, error) {
	f, err := in.parse()
	if err != nil {
		return domain.Expense{}, err
	}

	var out domain.Expense
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		e, err := tx.Expenses().GetExpense(ctx, userID, id)
		if err != nil {
			return mapExpenseErr(err, "get expense")
		}

		f.apply(&e, s.now())
		if err := tx.Expenses().UpdateExpense(ctx, e); err != nil {
			return mapExpenseErr(err, "update expense")
		}

		out = e
		return nil
	})
	if err != nil {
		return domain.Expense{}, err
	}

	return out, nil
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Store.Expenses().DeleteExpense(ctx, userID, id); err != nil {
		return mapExpenseErr(err, "delete expense")
	}
	slogx.FromContext(ctx).Debug("expense deleted", slog.String("expense_id", id))
	return nil
}

func (f expenseFields) apply(e *domain.Expense, now time.Time) {
	e.Description = f.description
	e.Category = f.category
	e.IsRecurring = f.recurring
	e.Amount = f.amount
	e.TaxPercent = f.taxPercent
	e.TotalAmount = domain.TotalWithTax(f.amount, f.taxPercent)
	e.Date = f.date
	e.UpdatedAt = now
}

func mapExpenseErr(err error, op string) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
