package http

import (
	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
)

func toUser(u domain.PublicUser) tallysdk.User {
	return tallysdk.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func toAuthResponse(msg string, res service.AuthResult) tallysdk.AuthResponse {
	return tallysdk.AuthResponse{
		Message: msg,
		User:    toUser(res.User),
		Tokens: tallysdk.Tokens{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	}
}

func toExpense(e domain.Expense) tallysdk.Expense {
	return tallysdk.Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Category:    string(e.Category),
		IsRecurring: e.IsRecurring,
		Amount:      e.Amount.Float64(),
		TaxPercent:  e.TaxPercent.Float64(),
		TotalAmount: e.TotalAmount.Float64(),
		Date:        e.Date,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toPagination(p domain.Pagination) tallysdk.Pagination {
	return tallysdk.Pagination(p)
}
