package service

import (
	"context"
	"errors"
	"fmt"
	"itemtracker/internal/config"
	"itemtracker/internal/dto"
	"itemtracker/internal/model"
	"itemtracker/internal/repository"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 6

// Claims is the signed identity carried by bearer tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserService is the identity provider: accounts, login tokens and token
// verification.
type UserService interface {
	Register(ctx context.Context, username, password string) (*dto.CurrentUser, error)
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	Verify(token string) (*dto.CurrentUser, error)
}

type userServiceImpl struct {
	accountRepo repository.AccountRepository
	secret      []byte
	tokenTTL    time.Duration
	emailDomain string
	now         func() time.Time
}

func NewUserService(
	accountRepo repository.AccountRepository,
	authCfg config.Auth,
) UserService {
	return &userServiceImpl{
		accountRepo: accountRepo,
		secret:      []byte(authCfg.JWTSecret),
		tokenTTL:    authCfg.TokenTTL,
		emailDomain: authCfg.EmailDomain,
		now:         time.Now,
	}
}

func normalizeUsername(username string) (string, bool) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.ContainsAny(username, "@ \t") {
		return "", false
	}
	return username, true
}

// emailFor maps a username onto the account email used as item owner.
func (s *userServiceImpl) emailFor(username string) string {
	return username + "@" + s.emailDomain
}

func (s *userServiceImpl) Register(ctx context.Context, username, password string) (*dto.CurrentUser, error) {
	username, ok := normalizeUsername(username)
	if !ok {
		return nil, fmt.Errorf("%w: username must be a single word", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	exists, err := s.accountRepo.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        s.emailFor(username),
		PasswordHash: string(hash),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("store account: %w", err)
	}

	return &dto.CurrentUser{ID: account.ID, Email: account.Email}, nil
}

func (s *userServiceImpl) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	username, ok := normalizeUsername(username)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := &Claims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.TokenResponse{
		Token:     signed,
		Email:     account.Email,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *userServiceImpl) Verify(token string) (*dto.CurrentUser, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, ErrInvalidCredentials
	}

	return &dto.CurrentUser{ID: claims.Subject, Email: claims.Email}, nil
}
