package domain

import "time"

const (
	AuditSignup       = "auth.signup"
	AuditSignin       = "auth.signin"
	AuditSigninFailed = "auth.signin_failed"
	AuditSignout      = "auth.signout"
	AuditUserUpdated  = "user.updated"
	AuditUserDeleted  = "user.deleted"
)

// AuditEvent records an account-related action for the audit trail.
// Subject is the email of the affected account; ActorID is zero when the
// action was performed anonymously (failed sign-in attempts).
type AuditEvent struct {
	ID      string    `json:"id"`
	Action  string    `json:"action"`
	ActorID int64     `json:"actor_id"`
	Subject string    `json:"subject"`
	IP      string    `json:"ip"`
	At      time.Time `json:"at"`
}
