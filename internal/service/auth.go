package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"studybuddy/internal/config"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	AccessToken string           `json:"access_token"`
	User        model.PublicUser `json:"user"`
}

// AuthService registers users, checks credentials and issues bearer tokens.
type AuthService interface {
	// Register stores a new account with a bcrypt password hash.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and issues an HS256 token whose subject is the user ID.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ParseToken validates a token and returns the user ID it was issued for.
	ParseToken(token string) (string, error)

	// Me returns the identity of the user.
	Me(ctx context.Context, userID string) (*model.PublicUser, error)

	// Exists reports whether an account with the ID is stored.
	Exists(ctx context.Context, userID string) (bool, error)
}

type authService struct {
	users      repository.UserRepository
	secret     []byte
	accessTTL  time.Duration
	bcryptCost int
	now        Clock
}

// NewAuthService constructs an AuthService.
func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{
		users:      users,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        systemClock,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:              uuid.NewString(),
		Email:           email,
		PasswordHash:    string(hash),
		Name:            strings.TrimSpace(in.Name),
		LearningStyle:   model.DefaultLearningStyle,
		PreferredTopics: []string{},
		DifficultyLevel: model.DefaultDifficultyLevel,
		StudyGoals:      []string{},
		CreatedAt:       s.now(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		// A concurrent registration can win between the lookup and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{AccessToken: token, User: u.Public()}, nil
}

func (s *authService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) ParseToken(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.PublicUser, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err)
	}
	pub := u.Public()
	return &pub, nil
}

func (s *authService) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.users.FindByID(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
