package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"boardTracker/internal/auth"
	"boardTracker/internal/logger"
	"boardTracker/internal/models/user"
	repo "boardTracker/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const emailTokenTTL = 24 * time.Hour

type AuthService struct {
	users         UserRepository
	mail          Mailer
	secret        []byte
	tokenTTL      time.Duration
	webServiceURL string
}

func NewAuthService(users UserRepository, mail Mailer, secret []byte, tokenTTL time.Duration, webServiceURL string) AuthService {
	return AuthService{
		users:         users,
		mail:          mail,
		secret:        secret,
		tokenTTL:      tokenTTL,
		webServiceURL: webServiceURL,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*user.User, string, error) {
	if !emailRegexp.MatchString(email) {
		return nil, "", NewValidationError("email", "неверный формат")
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, "", NewInternal(fmt.Errorf("проверка почты: %w", err))
	}
	if existing != nil {
		return nil, "", NewAlreadyExists("пользователь", email)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", NewInternal(err)
	}

	u := &user.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		PasswordHash:       hash,
		EmailNotifications: true,
	}

	if err := s.sendValidationLink(email); err != nil {
		return nil, "", err
	}

	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, "", NewInternal(fmt.Errorf("создание пользователя: %w", err))
	}

	token, err := auth.GenerateToken(s.secret, u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", NewInternal(fmt.Errorf("выпуск токена: %w", err))
	}

	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*user.User, string, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", NewUnauthorized("Неверные данные")
		}
		return nil, "", NewInternal(fmt.Errorf("получение пользователя: %w", err))
	}

	if !auth.ComparePassword(u.PasswordHash, password) {
		logger.Warn("Service: Неверный пароль", zap.String("email", email))
		return nil, "", NewUnauthorized("Неверные данные")
	}

	if !u.EmailValidated {
		return nil, "", NewUnauthorized("Аккаунт не активирован")
	}

	token, err := auth.GenerateToken(s.secret, u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", NewInternal(fmt.Errorf("выпуск токена: %w", err))
	}

	return u, token, nil
}

func (s *AuthService) RenewToken(ctx context.Context, tokenString string) (*user.User, string, error) {
	id, err := auth.ParseToken(s.secret, tokenString)
	if err != nil {
		return nil, "", NewUnauthorized("Невалидный токен")
	}

	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", NewNotFound("пользователь", id.String())
		}
		return nil, "", NewInternal(fmt.Errorf("получение пользователя: %w", err))
	}

	if !u.EmailValidated {
		return nil, "", NewUnauthorized("Аккаунт не активирован")
	}

	newToken, err := auth.GenerateToken(s.secret, u.ID, s.tokenTTL)
	if err != nil {
		return nil, "", NewInternal(fmt.Errorf("выпуск токена: %w", err))
	}

	return u, newToken, nil
}

func (s *AuthService) ValidateEmail(ctx context.Context, tokenString string) error {
	email, err := auth.ParseEmailToken(s.secret, tokenString)
	if err != nil {
		return NewUnauthorized("Невалидный токен")
	}

	if err := s.users.MarkEmailValidated(ctx, email); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFound("пользователь", email)
		}
		return NewInternal(fmt.Errorf("подтверждение почты: %w", err))
	}
	return nil
}

func (s *AuthService) RequestPasswordChange(ctx context.Context, email string) error {
	if !emailRegexp.MatchString(email) {
		return NewValidationError("email", "неверный формат")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFound("пользователь", email)
		}
		return NewInternal(fmt.Errorf("получение пользователя: %w", err))
	}

	token, err := auth.GenerateEmailToken(s.secret, u.Email, emailTokenTTL)
	if err != nil {
		return NewInternal(fmt.Errorf("выпуск токена: %w", err))
	}

	link := fmt.Sprintf("%s/auth/new-password/%s", s.webServiceURL, token)
	html := fmt.Sprintf(`
		<h1>Change your password</h1>
		<p>Click on the following link to change your password</p>
		<a href="%s">Change your password</a>
	`, link)

	if err := s.mail.Send(u.Email, "Change your password", html); err != nil {
		return NewInternal(fmt.Errorf("отправка письма: %w", err))
	}
	return nil
}

func (s *AuthService) ChangePassword(ctx context.Context, tokenString, newPassword string) error {
	email, err := auth.ParseEmailToken(s.secret, tokenString)
	if err != nil {
		return NewUnauthorized("Невалидный токен")
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFound("пользователь", email)
		}
		return NewInternal(fmt.Errorf("получение пользователя: %w", err))
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return NewInternal(err)
	}
	u.PasswordHash = hash

	if err := s.users.UpdateUser(ctx, u); err != nil {
		return NewInternal(fmt.Errorf("обновление пользователя: %w", err))
	}
	return nil
}

func (s *AuthService) sendValidationLink(email string) error {
	token, err := auth.GenerateEmailToken(s.secret, email, emailTokenTTL)
	if err != nil {
		return NewInternal(fmt.Errorf("выпуск токена: %w", err))
	}

	link := fmt.Sprintf("%s/auth/validate-email/%s", s.webServiceURL, token)
	html := fmt.Sprintf(`
		<h1>Validate your email</h1>
		<p>Click on the following link to validate your email</p>
		<a href="%s">Validate your email: %s</a>
	`, link, email)

	if err := s.mail.Send(email, "Validate your email", html); err != nil {
		return NewInternal(fmt.Errorf("отправка письма: %w", err))
	}
	return nil
}
