package service

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/tally/internal/tally/domain"
	"github.com/aussiebroadwan/tally/pkg/apperr"
)

const passwordPatternMessage = "Password must contain at least one lowercase letter, one uppercase letter, and one digit"

// problems collects field messages; a non-empty set becomes one validation
// error.
type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func (p problems) err() error {
	if len(p) == 0 {
		return nil
	}
	return apperr.Validation([]string(p))
}

type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// normalize trims and lower-cases the email, then checks every field.
func (in *RegisterInput) normalize() error {
	var p problems

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Email == "":
		p.addf(`"email" is required`)
	case !validEmail(in.Email):
		p.addf(`"email" must be a valid email`)
	}

	n := len(in.Username)
	switch {
	case n == 0:
		p.addf(`"username" is required`)
	case !isASCIIAlnum(in.Username):
		p.addf(`"username" must only contain alpha-numeric characters`)
	case n < 3:
		p.addf(`"username" length must be at least 3 characters long`)
	case n > 30:
		p.addf(`"username" length must be less than or equal to 30 characters long`)
	}

	switch {
	case in.Password == "":
		p.addf(`"password" is required`)
	case utf8.RuneCountInString(in.Password) < 6:
		p.addf(`"password" length must be at least 6 characters long`)
	case !hasPasswordMix(in.Password):
		p.addf(passwordPatternMessage)
	}

	return p.err()
}

type LoginInput struct {
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

func (in *LoginInput) normalize() error {
	var p problems
	in.EmailOrUsername = strings.TrimSpace(in.EmailOrUsername)
	if in.EmailOrUsername == "" {
		p.addf(`"emailOrUsername" is required`)
	}
	if in.Password == "" {
		p.addf(`"password" is required`)
	}
	return p.err()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	host := s[at+1:]
	dot := strings.LastIndexByte(host, '.')
	return dot > 0 && dot < len(host)-1
}

func isASCIIAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

func hasPasswordMix(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		case '0' <= r && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// ExpenseInput is the body of create and update. Pointers tell "absent"
// apart from zero.
type ExpenseInput struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	IsRecurring *bool    `json:"isRecurring"`
	Amount      *float64 `json:"amount"`
	TaxPercent  *float64 `json:"taxPercent"`
	Date        string   `json:"date"`
}

type expenseFields struct {
	description string
	category    domain.Category
	recurring   bool
	amount      domain.Hundredths
	taxPercent  domain.Hundredths
	date        time.Time
}

// parse rounds amounts to two decimals before range checks.
func (in ExpenseInput) parse() (expenseFields, error) {
	var (
		p problems
		f expenseFields
	)

	f.description = strings.TrimSpace(in.Description)
	switch n := utf8.RuneCountInString(f.description); {
	case n == 0:
		p.addf(`"description" is required`)
	case n > 500:
		p.addf(`"description" length must be less than or equal to 500 characters long`)
	}

	f.category = domain.Category(in.Category)
	switch {
	case in.Category == "":
		p.addf(`"category" is required`)
	case !f.category.Valid():
		p.addf(`"category" must be one of %s`, categoryList())
	}

	if in.IsRecurring != nil {
		f.recurring = *in.IsRecurring
	}

	if in.Amount == nil {
		p.addf(`"amount" is required`)
	} else {
		f.amount = domain.HundredthsFromFloat(*in.Amount)
		if f.amount <= 0 {
			p.addf(`"amount" must be a positive number`)
		}
	}

	if in.TaxPercent != nil {
		f.taxPercent = domain.HundredthsFromFloat(*in.TaxPercent)
		switch {
		case f.taxPercent < 0:
			p.addf(`"taxPercent" must be greater than or equal to 0`)
		case f.taxPercent > 100_00:
			p.addf(`"taxPercent" must be less than or equal to 100`)
		}
	}

	if in.Date == "" {
		p.addf(`"date" is required`)
	} else if d, ok := parseISODate(in.Date); ok {
		f.date = d
	} else {
		p.addf(`"date" must be in ISO 8601 date format`)
	}

	return f, p.err()
}

func categoryList() string {
	names := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		names[i] = string(c)
	}
	return "[" + strings.Join(names, ", ") + "]"
}

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseISODate accepts full timestamps or bare dates. Values without an
// offset are read as UTC.
func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

const (
	defaultPage  = 1
	defaultLimit = 5
	maxLimit     = 50
	maxQueryLen  = 100
)

// ListQuery is a parsed and defaulted expense listing request.
type ListQuery struct {
	Page   int
	Limit  int
	Filter domain.ExpenseFilter
}

// ParseListQuery reads page, limit, category, dateFrom, dateTo, sortBy, order
// and q from v.
func ParseListQuery(v url.Values) (ListQuery, error) {
	var p problems
	q := ListQuery{
		Page:  defaultPage,
		Limit: defaultLimit,
		Filter: domain.ExpenseFilter{
			SortBy:     domain.SortByDate,
			Descending: true,
		},
	}

	if raw := v.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			p.addf(`"page" must be a number`)
		case n < 1:
			p.addf(`"page" must be greater than or equal to 1`)
		default:
			q.Page = n
		}
	}

	if raw := v.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			p.addf(`"limit" must be a number`)
		case n < 1:
			p.addf(`"limit" must be greater than or equal to 1`)
		case n > maxLimit:
			p.addf(`"limit" must be less than or equal to %d`, maxLimit)
		default:
			q.Limit = n
		}
	}

	if raw := v.Get("category"); raw != "" {
		c := domain.Category(raw)
		if c.Valid() {
			q.Filter.Category = c
		} else {
			p.addf(`"category" must be one of %s`, categoryList())
		}
	}

	for _, bound := range []struct {
		key string
		dst **time.Time
	}{
		{"dateFrom", &q.Filter.DateFrom},
		{"dateTo", &q.Filter.DateTo},
	} {
		raw := v.Get(bound.key)
		if raw == "" {
			continue
		}
		t, ok := parseISODate(raw)
		if !ok {
			p.addf(`%q must be in ISO 8601 date format`, bound.key)
			continue
		}
		*bound.dst = &t
	}

	if raw := v.Get("sortBy"); raw != "" {
		s := domain.ExpenseSort(raw)
		if s.Valid() {
			q.Filter.SortBy = s
		} else {
			p.addf(`"sortBy" must be one of [date, amount, totalAmount, createdAt]`)
		}
	}

	switch v.Get("order") {
	case "", "desc":
	case "asc":
		q.Filter.Descending = false
	default:
		p.addf(`"order" must be one of [asc, desc]`)
	}

	if raw := strings.TrimSpace(v.Get("q")); raw != "" {
		if utf8.RuneCountInString(raw) > maxQueryLen {
			p.addf(`"q" length must be less than or equal to %d characters long`, maxQueryLen)
		} else {
			q.Filter.Query = raw
		}
	}

	q.Filter.Limit = q.Limit
	q.Filter.Offset = (q.Page - 1) * q.Limit

	return q, p.err()
}
