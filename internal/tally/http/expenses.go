package http

import (
	"net/http"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/internal/tally/service"
	"github.com/aussiebroadwan/tally/pkg/httpx"
	"github.com/aussiebroadwan/tally/pkg/tallysdk"
)

// ExpensesHandler serves /expenses. Every route sits behind RequireUser and
// only ever sees the caller's own rows.
type ExpensesHandler struct {
	Expenses *service.ExpenseService
}

// HandleCreate handles POST /expenses
//
//	@Summary		Create expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		tallysdk.ExpenseRequest		true	"Expense"
//	@Success		201		{object}	tallysdk.ExpenseResponse
//	@Failure		400		{object}	tallysdk.ErrorResponse	"validation failed"
//	@Failure		401		{object}	tallysdk.ErrorResponse
//	@Router			/api/expenses [post]
func (h *ExpensesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in service.ExpenseInput
	if err := decodeBody(w, r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}

	e, err := h.Expenses.Create(r.Context(), user.ID, in)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, tallysdk.ExpenseResponse{
		Message: "Expense created",
		Expense: toExpense(e),
	})
}

// HandleList handles GET /expenses
//
//	@Summary		List expenses
//	@Description	Pages through the caller's expenses, newest first unless told otherwise.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page		query		int		false	"Page, from 1"				default(1)
//	@Param			limit		query		int		false	"Page size, at most 50"		default(5)
//	@Param			category	query		string	false	"Category"					Enums(FOOD, TRANSPORT, UTILITIES, ENTERTAINMENT, OTHER)
//	@Param			dateFrom	query		string	false	"Inclusive lower bound"
//	@Param			dateTo		query		string	false	"Inclusive upper bound"
//	@Param			sortBy		query		string	false	"Sort column"				Enums(date, amount, totalAmount, createdAt)
//	@Param			order		query		string	false	"Sort direction"			Enums(asc, desc)
//	@Param			q			query		string	false	"Description contains, case-insensitive"
//	@Success		200			{object}	tallysdk.ExpenseListResponse
//	@Failure		400			{object}	tallysdk.ErrorResponse	"validation failed"
//	@Failure		401			{object}	tallysdk.ErrorResponse
//	@Router			/api/expenses [get]
func (h *ExpensesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := service.ParseListQuery(r.URL.Query())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	rows, page, err := h.Expenses.List(r.Context(), user.ID, q)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	out := make([]tallysdk.Expense, 0, len(rows))
	for _, e := range rows {
		out = append(out, toExpense(e))
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.ExpenseListResponse{
		Expenses:   out,
		Pagination: toPagination(page),
	})
}

// HandleGet handles GET /expenses/{id}
//
//	@Summary		Get expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Expense ID"
//	@Success		200	{object}	tallysdk.ExpenseResponse
//	@Failure		401	{object}	tallysdk.ErrorResponse
//	@Failure		404	{object}	tallysdk.ErrorResponse
//	@Router			/api/expenses/{id} [get]
func (h *ExpensesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	e, err := h.Expenses.Get(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.ExpenseResponse{Expense: toExpense(e)})
}

// HandleUpdate handles PUT /expenses/{id}
//
//	@Summary		Replace expense
//	@Description	Replaces every field of an expense and recomputes its total.
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Expense ID"
//	@Param			body	body		tallysdk.ExpenseRequest	true	"Expense"
//	@Success		200		{object}	tallysdk.ExpenseResponse
//	@Failure		400		{object}	tallysdk.ErrorResponse	"validation failed"
//	@Failure		401		{object}	tallysdk.ErrorResponse
//	@Failure		404		{object}	tallysdk.ErrorResponse
//	@Router			/api/expenses/{id} [put]
func (h *ExpensesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in service.ExpenseInput
	if err := decodeBody(w, r, &in); err != nil {
		writeAppError(w, r, err)
		return
	}

	e, err := h.Expenses.Update(r.Context(), user.ID, r.PathValue("id"), in)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.ExpenseResponse{
		Message: "Expense updated",
		Expense: toExpense(e),
	})
}

// HandleDelete handles DELETE /expenses/{id}
//
//	@Summary		Delete expense
//	@Tags			Expenses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Expense ID"
//	@Success		200	{object}	tallysdk.MessageResponse
//	@Failure		401	{object}	tallysdk.ErrorResponse
//	@Failure		404	{object}	tallysdk.ErrorResponse
//	@Router			/api/expenses/{id} [delete]
func (h *ExpensesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.Expenses.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		writeAppError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, tallysdk.MessageResponse{Message: "Expense deleted"})
}

// currentUser reads the identity RequireUser attached, writing a 401 when
// the route was mounted without it.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.PublicUser, bool) {
	user, ok := service.UserFromContext(r.Context())
	if !ok {
		writeAppError(w, r, service.ErrMissingAccessToken)
	}
	return user, ok
}
