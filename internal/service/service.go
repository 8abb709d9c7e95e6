package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shop_service/internal/auth"
	"shop_service/internal/mailer"
	"shop_service/internal/models"
	"shop_service/internal/session"
	"shop_service/internal/storage"
)

const userUpdateRetries = 3

type Service interface {
	Register(ctx context.Context, username, email, password, role string) (models.User, error)
	Login(ctx context.Context, username, password string) (Tokens, models.User, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error

	VerifyEmail(ctx context.Context, email, code string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

type Tokens struct {
	Access  string
	Refresh string
}

type service struct {
	storage  storage.Storage
	registry session.Registry
	issuer   *auth.Issuer
	mail     mailer.Mailer
	log      *slog.Logger

	// now is swapped out in tests that exercise ticket expiry.
	now func() time.Time
}

func NewService(st storage.Storage, reg session.Registry, iss *auth.Issuer, ml mailer.Mailer, lgr *slog.Logger) *service {
	return &service{
		storage:  st,
		registry: reg,
		issuer:   iss,
		mail:     ml,
		log:      lgr,
		now:      time.Now,
	}
}

func (s *service) Register(ctx context.Context, username, email, password, role string) (models.User, error) {
	const op = "service.Register"

	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	code, err := auth.NewVerificationCode()
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Username:              username,
		Email:                 email,
		PasswordHash:          passwordHash,
		Role:                  role,
		IsEmailVerified:       false,
		EmailVerificationCode: code,
	}

	user, err = s.storage.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrDuplicateUser)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(user.Email, "Verify your email",
		fmt.Sprintf("Your verification code is: %s", code))

	return user, nil
}

func (s *service) Login(ctx context.Context, username, password string) (Tokens, models.User, error) {
	const op = "service.Login"

	user, err := s.storage.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if ok := auth.CheckPasswordHash(user.PasswordHash, password); !ok {
		return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, ErrBadCredentials)
	}

	accessToken, err := s.issuer.IssueAccessToken(user.Username, user.Role)
	if err != nil {
		return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err := s.issuer.IssueRefreshToken(user.Username, user.Role)
	if err != nil {
		return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.registry.Register(ctx, refreshToken); err != nil {
		return Tokens{}, models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	s.notify(user.Email, "New login",
		fmt.Sprintf("A new login to your account %q was detected.", user.Username))

	return Tokens{Access: accessToken, Refresh: refreshToken}, user, nil
}

// Refresh mints a new access token for a refresh token that is both
// registered and correctly signed. The refresh token itself is left
// unchanged.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "service.Refresh"

	valid, err := s.registry.IsValid(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}

	claims, err := s.issuer.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidRefreshToken)
	}

	accessToken, err := s.issuer.IssueAccessToken(claims.Username, claims.Role)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return accessToken, nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	const op = "service.Logout"

	if err := s.registry.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *service) VerifyEmail(ctx context.Context, email, code string) error {
	const op = "service.VerifyEmail"

	err := s.mutateUser(ctx, email, func(user *models.User) error {
		if user.EmailVerificationCode == "" || user.EmailVerificationCode != code {
			return ErrCodeMismatch
		}
		user.IsEmailVerified = true
		user.EmailVerificationCode = ""
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "service.RequestPasswordReset"

	var token string
	err := s.mutateUser(ctx, email, func(user *models.User) error {
		t, expires, err := auth.NewResetTicket(s.now())
		if err != nil {
			return err
		}
		token = t
		user.ResetPasswordToken = t
		user.ResetPasswordExpires = &expires
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.notify(email, "Password reset",
		fmt.Sprintf("Your password reset token is: %s\nIt expires in one hour.", token))

	return nil
}

func (s *service) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	const op = "service.ResetPassword"

	passwordHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.mutateUser(ctx, email, func(user *models.User) error {
		// Exact match, strictly before expiry.
		if user.ResetPasswordToken == "" ||
			user.ResetPasswordToken != token ||
			user.ResetPasswordExpires == nil ||
			!s.now().Before(*user.ResetPasswordExpires) {
			return ErrResetTicketInvalid
		}
		user.PasswordHash = passwordHash
		user.ResetPasswordToken = ""
		user.ResetPasswordExpires = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// mutateUser performs a read-modify-write on the user with the given
// email, retrying on optimistic-concurrency conflicts.
func (s *service) mutateUser(ctx context.Context, email string, apply func(*models.User) error) error {
	var lastErr error

	for i := 0; i < userUpdateRetries; i++ {
		user, err := s.storage.UserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := apply(&user); err != nil {
			return err
		}

		if _, err := s.storage.UpdateUser(ctx, user); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}

	return lastErr
}

// notify hands an email off to the mailer on its own goroutine.
// Delivery failures are logged and never reach the caller.
func (s *service) notify(to, subject, body string) {
	go func() {
		if err := s.mail.Send(to, subject, body); err != nil {
			s.log.Error("failed to send email",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.Any("error", err))
		}
	}()
}
