package constants

const (
	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 6

	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"
	// ContextKeyUserRole is the gin context key holding the authenticated user role.
	ContextKeyUserRole = "user_role"

	// FallbackProjectName is shown in translator task listings when the
	// parent project can no longer be resolved (e.g. deleted project).
	FallbackProjectName = "Untitled Project"
)
