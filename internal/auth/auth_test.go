package auth_test

import (
	"context"
	"errors"
	"testing"

	"careerflix/backend/internal/auth"
	"careerflix/backend/internal/store"
)

func newService() *auth.Service {
	return auth.NewService(store.New(store.NewMemoryKV()))
}

const goodPassword = "Str0ng!pass"

// ── Validation ─────────────────────────────────────────────────────────────

func TestValidEmail(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"user@example.com", true},
		{"  user@example.com  ", true},
		{"user@example", false},
		{"userexample.com", false},
		{"user @example.com", false},
		{"", false},
	}
	for _, c := range cases {
		if got := auth.ValidEmail(c.in); got != c.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"all rules", "Str0ng!pass", true},
		{"too short", "S0r!t", false},
		{"no uppercase", "str0ng!pass", false},
		{"no lowercase", "STR0NG!PASS", false},
		{"no digit", "Strong!pass", false},
		{"no special", "Str0ngpass", false},
	}
	for _, c := range cases {
		err := auth.CheckPasswordStrength(c.password)
		if c.valid && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.valid && err == nil {
			t.Errorf("%s: expected error, got nil", c.name)
		}
	}
}

// ── Register ───────────────────────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	svc := newService()
	if err := svc.Register(context.Background(), "Ada Lovelace", "Ada@Example.com", goodPassword); err != nil {
		t.Fatalf("Register: %v", err)
	}
}

func TestRegister_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := svc.Register(ctx, "Ada", "ada@example.com", goodPassword); err != nil {
		t.Fatal(err)
	}
	err := svc.Register(ctx, "Imposter", "ADA@EXAMPLE.COM", goodPassword)
	var vErr *auth.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for duplicate email, got %v", err)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newService()
	cases := []struct{ name, email, password string }{
		{"", "a@b.com", goodPassword},
		{"Ada", "", goodPassword},
		{"Ada", "a@b.com", ""},
	}
	for _, c := range cases {
		if err := svc.Register(context.Background(), c.name, c.email, c.password); err == nil {
			t.Errorf("Register(%q, %q, ...) expected error", c.name, c.email)
		}
	}
}

// ── Login / sessions ───────────────────────────────────────────────────────

func TestLogin_RoundTrip(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := svc.Register(ctx, "Ada", "ada@example.com", goodPassword); err != nil {
		t.Fatal(err)
	}

	token, user, err := svc.Login(ctx, "Ada@example.COM", goodPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if user.FullName != "Ada" {
		t.Errorf("user = %+v", user)
	}

	resolved, ok, err := svc.Resolve(ctx, token)
	if err != nil || !ok {
		t.Fatalf("Resolve: ok=%v err=%v", ok, err)
	}
	if resolved.Email != "ada@example.com" {
		t.Errorf("resolved email = %q", resolved.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := svc.Register(ctx, "Ada", "ada@example.com", goodPassword); err != nil {
		t.Fatal(err)
	}
	_, _, err := svc.Login(ctx, "ada@example.com", "WrongPass1!")
	var vErr *auth.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newService()
	_, _, err := svc.Login(context.Background(), "nobody@example.com", goodPassword)
	if err == nil {
		t.Fatal("expected error for unknown email")
	}
}

func TestLogout_InvalidatesToken(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	if err := svc.Register(ctx, "Ada", "ada@example.com", goodPassword); err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(ctx, "ada@example.com", goodPassword)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatal(err)
	}
	_, ok, err := svc.Resolve(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("token must not resolve after logout")
	}
}

func TestResolve_EmptyToken(t *testing.T) {
	svc := newService()
	_, ok, err := svc.Resolve(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("empty token must not resolve")
	}
}
