// Package auth implements the demo account layer: users live in the
// key-value store and passwords are stored and compared in plain text.
// This is explicitly a demo, not a credential system, so don't reach
// for bcrypt here.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"careerflix/backend/internal/store"
)

// User is one registered account. Email (lowercased) doubles as the user id
// that namespaces all tracker and movie state.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidationError wraps a user-facing signup/login message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// CheckPasswordStrength enforces the signup password rules: at least 8
// characters with uppercase, lowercase, a digit and a special character.
// Returns nil when the password passes.
func CheckPasswordStrength(password string) error {
	switch {
	case len(password) < 8:
		return &ValidationError{Msg: "Password must be at least 8 characters."}
	case !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }):
		return &ValidationError{Msg: "Password must contain at least one uppercase letter."}
	case !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }):
		return &ValidationError{Msg: "Password must contain at least one lowercase letter."}
	case !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }):
		return &ValidationError{Msg: "Password must contain at least one number."}
	case !strings.ContainsAny(password, "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?`~"):
		return &ValidationError{Msg: "Password must contain at least one special character."}
	}
	return nil
}

// Service manages the user registry and session tokens.
type Service struct {
	store *store.Store
}

// NewService returns a Service over st.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) users(ctx context.Context) (map[string]User, error) {
	m := make(map[string]User)
	if _, err := s.store.GetJSON(ctx, store.GlobalKey("users"), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Register creates an account. Validation failures come back as
// *ValidationError; anything else is a storage error.
func (s *Service) Register(ctx context.Context, fullName, email, password string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" || password == "" {
		return &ValidationError{Msg: "All fields are required."}
	}
	if !ValidEmail(email) {
		return &ValidationError{Msg: "Please enter a valid email address."}
	}
	if err := CheckPasswordStrength(password); err != nil {
		return err
	}

	users, err := s.users(ctx)
	if err != nil {
		return err
	}
	if _, exists := users[email]; exists {
		return &ValidationError{Msg: "An account with this email already exists."}
	}

	users[email] = User{FullName: fullName, Email: email, Password: password}
	return s.store.SetJSON(ctx, store.GlobalKey("users"), users)
}

// sessionTTL bounds how long a login token stays resolvable.
const sessionTTL = 30 * 24 * time.Hour

type session struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login checks credentials and issues a session token. The password compare
// is plain text, intentionally so for the demo.
func (s *Service) Login(ctx context.Context, email, password string) (token string, user User, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := s.users(ctx)
	if err != nil {
		return "", User{}, err
	}
	u, exists := users[email]
	if !exists || u.Password != password {
		return "", User{}, &ValidationError{Msg: "Invalid email or password."}
	}

	token = uuid.NewString()
	sess := session{Email: email, ExpiresAt: time.Now().Add(sessionTTL)}
	if err := s.store.SetJSON(ctx, store.GlobalKey("session:"+token), sess); err != nil {
		return "", User{}, fmt.Errorf("store session: %w", err)
	}
	return token, u, nil
}

// Resolve maps a session token back to its user. ok is false for unknown or
// expired tokens.
func (s *Service) Resolve(ctx context.Context, token string) (User, bool, error) {
	if token == "" {
		return User{}, false, nil
	}
	var sess session
	found, err := s.store.GetJSON(ctx, store.GlobalKey("session:"+token), &sess)
	if err != nil || !found {
		return User{}, false, err
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.store.Delete(ctx, store.GlobalKey("session:"+token))
		return User{}, false, nil
	}

	users, err := s.users(ctx)
	if err != nil {
		return User{}, false, err
	}
	u, exists := users[sess.Email]
	return u, exists, nil
}

// Logout invalidates a session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, store.GlobalKey("session:"+token))
}
