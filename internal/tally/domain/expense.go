package domain

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"time"
)

type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryUtilities     Category = "UTILITIES"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryOther         Category = "OTHER"
)

// Categories lists every valid Category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryOther,
}

func (c Category) Valid() bool { return slices.Contains(Categories, c) }

// Hundredths is a fixed-point number with two decimal places, used for money
// and percentages. 1234 means 12.34.
type Hundredths int64

// HundredthsFromFloat rounds f to the nearest hundredth.
func HundredthsFromFloat(f float64) Hundredths {
	return Hundredths(math.Round(f * 100))
}

func (h Hundredths) Float64() float64 { return float64(h) / 100 }

func (h Hundredths) String() string { return strconv.FormatFloat(h.Float64(), 'f', 2, 64) }

func (h Hundredths) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hundredths) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*h = HundredthsFromFloat(f)
	return nil
}

// TotalWithTax returns amount plus taxPercent of amount, rounded half up to
// the hundredth. Both inputs must be non-negative.
func TotalWithTax(amount, taxPercent Hundredths) Hundredths {
	// amount is in cents, taxPercent in hundredths of a percent, so the
	// product is 10^4 too large.
	return amount + (amount*taxPercent+5000)/10000
}

type Expense struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	IsRecurring bool       `json:"isRecurring"`
	Amount      Hundredths `json:"amount"`
	TaxPercent  Hundredths `json:"taxPercent"`
	TotalAmount Hundredths `json:"totalAmount"`
	Date        time.Time  `json:"date"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ExpenseSort names a sortable column as clients spell it.
type ExpenseSort string

const (
	SortByDate        ExpenseSort = "date"
	SortByAmount      ExpenseSort = "amount"
	SortByTotalAmount ExpenseSort = "totalAmount"
	SortByCreatedAt   ExpenseSort = "createdAt"
)

func (s ExpenseSort) Valid() bool {
	switch s {
	case SortByDate, SortByAmount, SortByTotalAmount, SortByCreatedAt:
		return true
	}
	return false
}

// ExpenseFilter narrows and orders a listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Category   Category
	DateFrom   *time.Time // inclusive
	DateTo     *time.Time // inclusive
	Query      string     // case-insensitive substring of description
	SortBy     ExpenseSort
	Descending bool
	Limit      int
	Offset     int
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page counts for a listing of total rows.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
