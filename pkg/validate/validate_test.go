package validate_test

import (
	"testing"

	"github.com/aranya-labs/aranya/pkg/validate"
)

type registerInput struct {
	Name                 string  `json:"name"                  validate:"required,min=2,max=50"`
	Email                string  `json:"email"                 validate:"required,email"`
	Password             string  `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" validate:"confirmed"`
	Role                 string  `json:"role"                  validate:"required,in=admin,customer"`
	Website              string  `json:"website"               validate:"nullable,url"`
	Rating               float64 `json:"rating"                validate:"required,between=0,5"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:                 "Priya Sharma",
		Email:                "priya@example.com",
		Password:             "secret123",
		PasswordConfirmation: "secret123",
		Role:                 "customer",
		Website:              "", // nullable, allowed to be empty
		Rating:               4.5,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=99"`
	}
	if errs := validate.Struct(in{Quantity: 120}); !validate.HasErrors(errs) {
		t.Error("expected quantity > 99 to fail")
	}
	if errs := validate.Struct(in{Quantity: 2}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 2 to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Type string `json:"type" validate:"required,in=percentage,fixed"`
	}
	if errs := validate.Struct(in{Type: "bogus"}); !validate.HasErrors(errs) {
		t.Error("expected invalid discount type to fail")
	}
	if errs := validate.Struct(in{Type: "percentage"}); validate.HasErrors(errs) {
		t.Errorf("expected percentage to pass: %v", errs)
	}
}

func TestConfirmedRule(t *testing.T) {
	type in struct {
		Password             string `json:"password"              validate:"required,min=8"`
		PasswordConfirmation string `json:"password_confirmation" validate:"confirmed"`
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "wrong"}); !validate.HasErrors(errs) {
		t.Error("expected confirmation mismatch to fail")
	}
	if errs := validate.Struct(in{Password: "secret123", PasswordConfirmation: "secret123"}); validate.HasErrors(errs) {
		t.Errorf("expected matching confirmation to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Discount float64 `json:"discount" validate:"required,between=0,100"`
	}
	if errs := validate.Struct(in{Discount: 150}); !validate.HasErrors(errs) {
		t.Error("expected discount > 100 to fail")
	}
	if errs := validate.Struct(in{Discount: 75}); validate.HasErrors(errs) {
		t.Errorf("expected discount 75 to pass: %v", errs)
	}
}

func TestAlphaDashRule(t *testing.T) {
	type in struct {
		Code string `json:"code" validate:"required,alpha_dash"`
	}
	if errs := validate.Struct(in{Code: "WELCOME_10"}); validate.HasErrors(errs) {
		t.Errorf("expected alpha_dash to pass: %v", errs)
	}
	if errs := validate.Struct(in{Code: "SAVE 10%"}); !validate.HasErrors(errs) {
		t.Error("expected alpha_dash to fail for spaces/punctuation")
	}
}

func TestDateRule(t *testing.T) {
	type in struct {
		ExpiresAt string `json:"expires_at" validate:"required,date"`
	}
	if errs := validate.Struct(in{ExpiresAt: "2026-12-31"}); validate.HasErrors(errs) {
		t.Errorf("expected valid date to pass: %v", errs)
	}
	if errs := validate.Struct(in{ExpiresAt: "someday"}); !validate.HasErrors(errs) {
		t.Error("expected invalid date to fail")
	}
}
