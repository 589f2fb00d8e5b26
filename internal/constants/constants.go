package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "job_board_session"

	// Session and context keys
	ContextKeyUserID = "user_id"
	ContextKeyActor  = "actor"
	SessionKeyLogin  = "logged_in_at"

	// Password policy
	MinPasswordLength = 8
	PasswordSymbols   = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

	// Display name policy
	MinNameLength = 2
	MaxNameLength = 50

	// HomeVacancyLimit is the number of vacancies shown on the landing page.
	HomeVacancyLimit = 3
	// RecentItemsLimit is the number of recent users/vacancies on the admin overview.
	RecentItemsLimit = 5
)
