package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrNoPassword         = errors.New("cannot change password for OAuth-only accounts")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Service struct {
	repo UserRepository
}

func NewService(repo UserRepository) *Service {
	return &Service{repo: repo}
}

// Register creates an email/password account.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hash := string(hashed)
	user := &User{
		Email:        email,
		PasswordHash: &hash,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		user.Name = &trimmed
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies email/password credentials. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GoogleAuth signs in, links or registers a user from a verified Google
// identity. The returned bool reports whether a new account was created.
func (s *Service) GoogleAuth(ctx context.Context, info *GoogleUserInfo) (*User, bool, error) {
	// Existing Google-linked account: refresh profile fields.
	if user, err := s.repo.FindByGoogleID(ctx, info.GoogleID); err == nil {
		if info.Name != "" {
			user.Name = &info.Name
		}
		if info.Picture != "" {
			user.ProfilePicture = &info.Picture
		}
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	email := strings.ToLower(info.Email)

	// Existing email/password account without a Google link yet.
	if user, err := s.repo.FindByEmail(ctx, email); err == nil {
		user.GoogleID = &info.GoogleID
		user.EmailVerified = true
		if info.Picture != "" {
			user.ProfilePicture = &info.Picture
		}
		if user.Name == nil && info.Name != "" {
			user.Name = &info.Name
		}
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, false, err
		}
		return user, false, nil
	}

	user := &User{
		Email:         email,
		GoogleID:      &info.GoogleID,
		EmailVerified: true,
	}
	if info.Name != "" {
		user.Name = &info.Name
	}
	if info.Picture != "" {
		user.ProfilePicture = &info.Picture
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, tokenType, err := ParseToken(refreshToken)
	if err != nil || tokenType != TokenTypeRefresh {
		return "", ErrInvalidToken
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return "", ErrUserNotFound
	}

	return GenerateAccessToken(userID)
}

// UpdateProfile sets the provided fields; a non-nil pointer to an empty
// string clears the field.
func (s *Service) UpdateProfile(ctx context.Context, user *User, name, picture *string) (*User, error) {
	if name != nil {
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			user.Name = &trimmed
		} else {
			user.Name = nil
		}
	}
	if picture != nil {
		if trimmed := strings.TrimSpace(*picture); trimmed != "" {
			user.ProfilePicture = &trimmed
		} else {
			user.ProfilePicture = nil
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, user *User, current, next string) error {
	if user.PasswordHash == nil {
		return ErrNoPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePasswordStrength(next); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashed)
	user.PasswordHash = &hash

	return s.repo.Update(ctx, user)
}

func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
