/*
Package tallysdk is a Go client for the Tally expense tracking API.

# Client vs Session

  - Client: public endpoints (register, login, refresh, health) and the
    source of Sessions
  - Session: calls made on behalf of a signed-in user, with the access token
    refreshed automatically shortly before it expires

Create a Client and sign in:

	client := tallysdk.NewClient("https://tally.example.com")

	session, err := client.Login(ctx, "alice", "Secret123")

Use the Session for everything that needs a user:

	me, err := session.Me(ctx)

	exp, err := session.CreateExpense(ctx, tallysdk.ExpenseRequest{
		Description: "Coffee",
		Category:    tallysdk.CategoryFood,
		Amount:      4.5,
		Date:        "2024-05-01",
	})

	page, err := session.ListExpenses(ctx, tallysdk.ListOptions{SortBy: "amount"})

# Refresh tokens

Refresh tokens rotate: each one can be exchanged exactly once. A Session
keeps the newest pair, so share one Session between goroutines rather than
copying its tokens around.

# Errors

Non-2xx responses come back as *APIError carrying the status code, the
server's message and any validation details.
*/
package tallysdk
