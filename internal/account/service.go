package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskman-io/taskman/internal/auth"
)

// ErrInvalidCredentials is returned for any failed login attempt. Unknown
// emails and wrong passwords are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

const minPasswordLength = 4

// Service orchestrates registration and login against the user store and
// the token issuer.
type Service struct {
	repo       Repository
	issuer     *auth.Issuer
	bcryptCost int
}

// NewService creates a new account Service.
func NewService(repo Repository, issuer *auth.Issuer, bcryptCost int) *Service {
	return &Service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user identity and issues an access token.
// Business rejections (duplicate email, password policy violations) are
// reported through RegisterResult.Errors; only infrastructure failures
// are returned as an error.
func (s *Service) Register(ctx context.Context, email, fullName, password string) (*RegisterResult, error) {
	if strings.TrimSpace(email) == "" {
		return &RegisterResult{Errors: []string{"Email is required."}}, nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("looking up email: %w", err)
	}
	if existing != nil {
		return &RegisterResult{Errors: []string{"User already exists with this email."}}, nil
	}

	if policyErrors := checkPasswordPolicy(password); len(policyErrors) > 0 {
		return &RegisterResult{Errors: policyErrors}, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// A concurrent registration can win the race past the lookup
		// above; the unique index is the authoritative guard.
		if errors.Is(err, ErrEmailTaken) {
			return &RegisterResult{Errors: []string{"User already exists with this email."}}, nil
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)

	return &RegisterResult{
		User: &UserSummary{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Token:    token,
		},
	}, nil
}

// Login verifies credentials and issues an access token. All credential
// failures surface as ErrInvalidCredentials with an identical result
// shape to prevent user enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID)

	return &LoginResult{
		User: &UserSummary{
			UserID:   user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Token:    token,
		},
	}, nil
}

// Logout records the sign-out event. Bearer tokens are stateless and are
// not revoked by this call; previously issued tokens remain valid until
// they expire.
func (s *Service) Logout(ctx context.Context) error {
	slog.Info("user logged out")
	return nil
}

// checkPasswordPolicy returns one message per violated rule.
func checkPasswordPolicy(password string) []string {
	var errs []string

	if len(password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("Passwords must be at least %d characters.", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if !hasDigit {
		errs = append(errs, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		errs = append(errs, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		errs = append(errs, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if !hasSymbol {
		errs = append(errs, "Passwords must have at least one non alphanumeric character.")
	}

	return errs
}
