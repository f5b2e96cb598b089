package domain

import (
	"errors"
	"testing"
)

func TestValidDialCode(t *testing.T) {
	valid := []string{"+1", "+33", "+229", "+1234"}
	for _, code := range valid {
		if !ValidDialCode(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}

	invalid := []string{"", "22", "+", "+12345", "229", "+22a", " +229", "+229 "}
	for _, code := range invalid {
		if ValidDialCode(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}

func TestValidate_EmailLogin(t *testing.T) {
	if err := Validate(EmailLogin{Email: "a@b.org", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Validate(EmailLogin{Email: "", Password: "secret"})
	assertInvalidInput(t, err)
}

func TestValidate_PhoneLogin_BadDialCode(t *testing.T) {
	err := Validate(PhoneLogin{DialCode: "22", Number: "97000000", Password: "secret"})
	assertInvalidInput(t, err)
}

func TestValidate_PhoneLogin_OK(t *testing.T) {
	if err := Validate(PhoneLogin{DialCode: "+229", Number: "97000000", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIdentifier(t *testing.T) {
	if got := (EmailLogin{Email: "a@b.org"}).Identifier(); got != "a@b.org" {
		t.Fatalf("unexpected identifier %q", got)
	}
	if got := (PhoneLogin{DialCode: "+229", Number: "97000000"}).Identifier(); got != "+22997000000" {
		t.Fatalf("unexpected identifier %q", got)
	}
}

func assertInvalidInput(t *testing.T, err error) {
	t.Helper()
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Kind != KindInvalidInput {
		t.Fatalf("expected KindInvalidInput, got %s", ae.Kind)
	}
}
