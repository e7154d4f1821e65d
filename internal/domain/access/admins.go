package access

import "strings"

type Decision string

const (
	// DecisionAllowed: the email is on the allow-list.
	DecisionAllowed Decision = "allowed"
	// DecisionOpen: the allow-list is empty, so everyone signed in is let through.
	DecisionOpen   Decision = "open"
	DecisionDenied Decision = "denied"
)

func (d Decision) Authorized() bool {
	return d == DecisionAllowed || d == DecisionOpen
}

// AuthorizeAdmin checks email against the configured allow-list.
// Comparison is case-insensitive and ignores surrounding spaces.
func AuthorizeAdmin(email string, allowList []string) Decision {
	if len(allowList) == 0 {
		return DecisionOpen
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return DecisionDenied
	}
	for _, allowed := range allowList {
		if strings.ToLower(strings.TrimSpace(allowed)) == email {
			return DecisionAllowed
		}
	}
	return DecisionDenied
}

// DenialMessage is shown to an identity that signed in but may not administer.
func DenialMessage(email string) string {
	return "Access denied: " + email + " is not an authorized admin"
}
