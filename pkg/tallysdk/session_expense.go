package tallysdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ListOptions filters and pages ListExpenses. Zero values use the server's
// defaults.
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	DateFrom time.Time
	DateTo   time.Time
	SortBy   string // date, amount, totalAmount or createdAt
	Order    string // asc or desc
	Query    string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Category != "" {
		v.Set("category", o.Category)
	}
	if !o.DateFrom.IsZero() {
		v.Set("dateFrom", o.DateFrom.UTC().Format(time.RFC3339))
	}
	if !o.DateTo.IsZero() {
		v.Set("dateTo", o.DateTo.UTC().Format(time.RFC3339))
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	if o.Order != "" {
		v.Set("order", o.Order)
	}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	return v
}

func (s *Session) CreateExpense(ctx context.Context, req ExpenseRequest) (*Expense, error) {
	var out ExpenseResponse
	if err := s.do(ctx, http.MethodPost, "/expenses", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

func (s *Session) ListExpenses(ctx context.Context, opts ListOptions) (*ExpenseListResponse, error) {
	path := "/expenses"
	if q := opts.values().Encode(); q != "" {
		path += "?" + q
	}

	var out ExpenseListResponse
	if err := s.do(ctx, http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) GetExpense(ctx context.Context, id string) (*Expense, error) {
	var out ExpenseResponse
	if err := s.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

// UpdateExpense replaces every field of the expense.
func (s *Session) UpdateExpense(ctx context.Context, id string, req ExpenseRequest) (*Expense, error) {
	var out ExpenseResponse
	if err := s.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(id), req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Expense, nil
}

func (s *Session) DeleteExpense(ctx context.Context, id string) error {
	var out MessageResponse
	return s.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, &out, http.StatusOK)
}
