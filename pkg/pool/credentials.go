package pool

import "strings"

// Credentials are the login pair sent to the pool.
type Credentials struct {
	User     string
	Password string
}

// ParseUserpass splits "user:password" on the first colon. The password keeps
// any further colons.
func ParseUserpass(raw string) (Credentials, error) {
	user, password, ok := strings.Cut(raw, ":")
	if !ok {
		return Credentials{}, &ParseError{Op: "parse userpass", Input: redact(raw), Err: ErrMissingSeparator}
	}
	return Credentials{User: user, Password: password}, nil
}

// redact keeps a credential string out of error text while still hinting at
// what was rejected.
func redact(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-2)
}
