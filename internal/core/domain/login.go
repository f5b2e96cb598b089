package domain

import "regexp"

// dialCodeRe matches an international dial code: a plus sign followed by one
// to four digits.
var dialCodeRe = regexp.MustCompile(`^\+\d{1,4}$`)

// ValidDialCode reports whether code is a well-formed country dial code.
func ValidDialCode(code string) bool {
	return dialCodeRe.MatchString(code)
}

// LoginCredentials is a closed union over the two supported login methods.
// Consumers type-switch over EmailLogin and PhoneLogin; no other variant
// exists.
type LoginCredentials interface {
	loginCredentials()
	// Identifier is the stable key used for duplicate-submission locking
	// and audit records.
	Identifier() string
}

// EmailLogin authenticates with an email address.
type EmailLogin struct {
	Email    string
	Password string
}

func (EmailLogin) loginCredentials()    {}
func (l EmailLogin) Identifier() string { return l.Email }

// PhoneLogin authenticates with a dial code and national number.
type PhoneLogin struct {
	DialCode string
	Number   string
	Password string
}

func (PhoneLogin) loginCredentials()    {}
func (l PhoneLogin) Identifier() string { return l.DialCode + l.Number }

// Validate performs the local checks that must fail before any network call.
func Validate(creds LoginCredentials) error {
	switch c := creds.(type) {
	case EmailLogin:
		if c.Email == "" || c.Password == "" {
			return NewAuthError(KindInvalidInput, "email and password are required", nil)
		}
	case PhoneLogin:
		if c.Number == "" || c.Password == "" {
			return NewAuthError(KindInvalidInput, "phone number and password are required", nil)
		}
		if !ValidDialCode(c.DialCode) {
			return NewAuthError(KindInvalidInput, "dial code must match +NNN (1-4 digits)", nil)
		}
	default:
		return NewAuthError(KindInvalidInput, "unsupported login method", nil)
	}
	return nil
}
