// Package validator checks request input before it reaches services.
// Validators return a result value instead of an error: invalid input is an
// expected outcome, not a failure of the validator itself.
package validator

import "net/mail"

// ValidationResult is a tagged Ok | Invalid{reason} value.
type ValidationResult struct {
	OK     bool
	Reason string
}

func ok() ValidationResult { return ValidationResult{OK: true} }

func invalid(reason string) ValidationResult { return ValidationResult{Reason: reason} }

// UserForCreation validates a create/register payload: both fields required,
// the email well-formed, the password at least six characters.
func UserForCreation(email, password string) ValidationResult {
	if email == "" {
		return invalid("Email is required")
	}
	if password == "" {
		return invalid("Password is required")
	}
	if !validEmail(email) {
		return invalid("Invalid email format")
	}
	if len(password) < 6 {
		return invalid("Password must be at least 6 characters")
	}
	return ok()
}

// UserForUpdate validates a partial update: each field is optional but must
// pass the same checks when present.
func UserForUpdate(email, password *string) ValidationResult {
	if email != nil && *email != "" && !validEmail(*email) {
		return invalid("Invalid email format")
	}
	if password != nil && *password != "" && len(*password) < 6 {
		return invalid("Password must be at least 6 characters")
	}
	return ok()
}

// StockSymbol validates the q query parameter.
func StockSymbol(symbol string) ValidationResult {
	if symbol == "" {
		return invalid("Stock symbol is required")
	}
	return ok()
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
