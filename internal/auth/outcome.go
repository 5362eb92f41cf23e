package auth

// Outcome is the result of one login attempt.
type Outcome int

const (
	// OutcomeUnknown means no credential source vouched for the user.
	OutcomeUnknown Outcome = iota
	// OutcomeAuthenticated means a credential source accepted the password.
	OutcomeAuthenticated
	// OutcomeRejected means the admin identity claimed the username and the
	// password did not match. It is final for the attempt.
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAuthenticated:
		return "authenticated"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
