package constants

const (
	// ContextKeyEmployeeID is used both as the session key and the gin context key.
	ContextKeyEmployeeID = "employee_id"

	SessionCookieName = "team_session"

	// Session lifetime when "remember me" is checked at login.
	SessionMaxAge = 86400 * 14

	MinPasswordLength = 8

	// PageSize is the fixed number of items per list page.
	PageSize    = 5
	MinPageSize = 1

	// MinPage is the first page number. Lower requests resolve to it.
	MinPage = 1

	// MaxQueryLength is the longest search query that is still applied.
	MaxQueryLength = 255

	MaxAIGeneratedTasks = 20
)

// Context keys for resources resolved by middleware.
const (
	ContextKeyProject = "project"
	ContextKeyTask    = "task"
	ContextKeyLogger  = "logger"
)
