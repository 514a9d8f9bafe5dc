package validator

import "testing"

type contactForm struct {
	Name  string `json:"name" validate:"notblank,max=100"`
	Phone string `json:"phone" validate:"notblank,phone"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	errs := Validate(&contactForm{Name: "   ", Phone: "", Email: "nope"})

	if errs["name"] != "This field is required" {
		t.Fatalf("expected name required, got %q", errs["name"])
	}
	if errs["phone"] != "This field is required" {
		t.Fatalf("expected phone required, got %q", errs["phone"])
	}
	if errs["email"] != "Invalid email format" {
		t.Fatalf("expected email format error, got %q", errs["email"])
	}
}

func TestValidateAcceptsOptionalEmail(t *testing.T) {
	if errs := Validate(&contactForm{Name: "Li Wei", Phone: "+86 138-0000-0000"}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestPhoneValidation(t *testing.T) {
	if err := ValidateVar("13800000000", "phone"); err != nil {
		t.Fatalf("expected plain digits to pass: %v", err)
	}
	if err := ValidateVar("call me", "phone"); err == nil {
		t.Fatalf("expected letters to fail")
	}
}
