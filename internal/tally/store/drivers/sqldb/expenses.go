package sqldb

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
)

type expensesRepo struct {
	db DBTX
	d  Dialect
}

const expenseColumns = `id, user_id, description, category, is_recurring, amount, tax_percent, total_amount, date, created_at, updated_at`

var sortColumns = map[domain.ExpenseSort]string{
	domain.SortByDate:        "date",
	domain.SortByAmount:      "amount",
	domain.SortByTotalAmount: "total_amount",
	domain.SortByCreatedAt:   "created_at",
}

func scanExpense(row rowScanner) (domain.Expense, error) {
	var e domain.Expense
	var category string
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Description,
		&category,
		&e.IsRecurring,
		&e.Amount,
		&e.TaxPercent,
		&e.TotalAmount,
		scanTime(&e.Date),
		scanTime(&e.CreatedAt),
		scanTime(&e.UpdatedAt),
	)
	e.Category = domain.Category(category)
	return e, err
}

func (r *expensesRepo) CreateExpense(ctx context.Context, e domain.Expense) error {
	_, err := r.db.ExecContext(ctx,
		r.d.Rebind(`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		e.ID,
		e.UserID,
		e.Description,
		string(e.Category),
		e.IsRecurring,
		int64(e.Amount),
		int64(e.TaxPercent),
		int64(e.TotalAmount),
		r.d.Time(e.Date),
		r.d.Time(e.CreatedAt),
		r.d.Time(e.UpdatedAt),
	)
	return r.d.mapWriteError(err)
}

func (r *expensesRepo) GetExpense(ctx context.Context, userID, id string) (domain.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.Rebind(`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	e, err := scanExpense(row)
	if err != nil {
		return domain.Expense{}, mapNotFound(err)
	}
	return e, nil
}

func (r *expensesRepo) UpdateExpense(ctx context.Context, e domain.Expense) error {
	res, err := r.db.ExecContext(ctx,
		r.d.Rebind(`UPDATE expenses
			SET description = ?, category = ?, is_recurring = ?, amount = ?, tax_percent = ?,
				total_amount = ?, date = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`),
		e.Description,
		string(e.Category),
		e.IsRecurring,
		int64(e.Amount),
		int64(e.TaxPercent),
		int64(e.TotalAmount),
		r.d.Time(e.Date),
		r.d.Time(e.UpdatedAt),
		e.ID,
		e.UserID,
	)
	return requireOneRow(res, err)
}

func (r *expensesRepo) DeleteExpense(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		r.d.Rebind(`DELETE FROM expenses WHERE id = ? AND user_id = ?`),
		id, userID,
	)
	return requireOneRow(res, err)
}

func (r *expensesRepo) ListExpenses(
	ctx context.Context,
	userID string,
	f domain.ExpenseFilter,
) ([]domain.Expense, int, error) {
	where, args := r.filterClause(userID, f)

	var total int
	err := r.db.QueryRowContext(ctx,
		r.d.Rebind(`SELECT COUNT(*) FROM expenses WHERE `+where),
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE ` + where + ` ORDER BY ` + orderClause(f)
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]domain.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

func (r *expensesRepo) filterClause(userID string, f domain.ExpenseFilter) (string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, string(f.Category))
	}
	if f.DateFrom != nil {
		conds = append(conds, "date >= ?")
		args = append(args, r.d.Time(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "date <= ?")
		args = append(args, r.d.Time(*f.DateTo))
	}
	if f.Query != "" {
		conds = append(conds, `LOWER(description) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(f.Query))+"%")
	}

	return strings.Join(conds, " AND "), args
}

// orderClause only ever emits known column names; id breaks ties so paging
// is stable.
func orderClause(f domain.ExpenseFilter) string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = sortColumns[domain.SortByDate]
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	return col + " " + dir + ", id " + dir
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
