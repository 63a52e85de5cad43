package tallysdk

import "time"

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a short human-readable message, e.g. "Invalid credentials".
	Error string `json:"error"`

	// Details is either a list of field messages (validation) or a single
	// string (duplicate user, rate limit). Omitted when empty.
	Details any `json:"details,omitempty"`
}

// ============================================================================
// Auth Types
// ============================================================================

// User is the public view of an account.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Tokens is an access/refresh pair. The access token authenticates API calls
// for 15 minutes; the refresh token can be exchanged once for a new pair
// within 7 days.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	// EmailOrUsername matches either column.
	EmailOrUsername string `json:"emailOrUsername"`
	Password        string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest ends the session of RefreshToken, or every session of the
// caller when it is empty.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AuthResponse is returned by register, login and refresh. Message is empty
// for refresh.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
	Tokens  Tokens `json:"tokens"`
}

type UserResponse struct {
	User User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Expense Types
// ============================================================================

// Categories accepted by the API.
const (
	CategoryFood          = "FOOD"
	CategoryTransport     = "TRANSPORT"
	CategoryUtilities     = "UTILITIES"
	CategoryEntertainment = "ENTERTAINMENT"
	CategoryOther         = "OTHER"
)

type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsRecurring bool      `json:"isRecurring"`
	Amount      float64   `json:"amount"`
	TaxPercent  float64   `json:"taxPercent"`
	TotalAmount float64   `json:"totalAmount"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExpenseRequest is the body of create and update. Amounts are rounded to two
// decimals by the server. Date accepts YYYY-MM-DD or RFC 3339.
type ExpenseRequest struct {
	Description string   `json:"description"`
	Category    string   `json:"category"`
	IsRecurring *bool    `json:"isRecurring,omitempty"`
	Amount      float64  `json:"amount"`
	TaxPercent  *float64 `json:"taxPercent,omitempty"`
	Date        string   `json:"date"`
}

// ExpenseResponse carries a single expense. Message is empty for reads.
type ExpenseResponse struct {
	Message string  `json:"message,omitempty"`
	Expense Expense `json:"expense"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type ExpenseListResponse struct {
	Expenses   []Expense  `json:"expenses"`
	Pagination Pagination `json:"pagination"`
}

// ============================================================================
// Health Types
// ============================================================================

// StatusResponse is the body of GET /api/health.
type StatusResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each readiness dependency as "ok" or "error: ...".
type HealthChecks struct {
	Database string `json:"database"`

	// Cache is reported only when rate limiting is backed by Redis.
	Cache string `json:"cache,omitempty"`
}
