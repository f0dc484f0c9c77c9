// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/constants"
	"github.com/taibuivan/folio/internal/platform/ctxutil"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/platform/validate"
	"github.com/taibuivan/folio/pkg/clock"
	"github.com/taibuivan/folio/pkg/uuid"
)

// # Contracts & Types

// TokenProvider issues and verifies signed access tokens.
type TokenProvider interface {
	Issue(userID, username string, role sec.UserRole, timeToLive time.Duration) (sec.IssuedToken, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// ErrInvalidCredentials is returned for any failed login, whether or not the
// account exists.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid login credentials")

// Service implements account use cases.
type Service struct {
	userRepository UserRepository
	tokenProvider  TokenProvider
	clock          clock.Clock
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(userRepo UserRepository, tokenProv TokenProvider, clk clock.Clock) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		clock:          clk,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new reader.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// # Registration Limits

const (
	MinUsernameLength    = 3
	MaxUsernameLength    = 32
	MinPasswordLength    = 8
	MaxDisplayNameLength = 64
)

/*
Register validates, hashes, and persists a new account on the free plan at
[StartingLevel].

Returns:
  - *User: Created entity
  - error: Conflict if the email or username is taken
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	} else if !isNotFound(err) {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("Username is already taken")
	} else if !isNotFound(err) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return nil, validate.RequiredError(FieldPassword, "Must be at most 72 bytes")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = input.Username
	}

	now := service.clock.Now()
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         sec.RoleReader,
		Level:        StartingLevel,
		Plan:         PlanFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginResult carries a freshly issued access token.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

/*
Login validates credentials (email or username) and issues an access token.

Returns:
  - *LoginResult: token and profile
  - error: ErrInvalidCredentials for unknown accounts and wrong passwords alike
*/
func (service *Service) Login(context context.Context, login, password string) (*LoginResult, error) {
	validator := &validate.Validator{}
	if err := validator.Required(FieldLogin, login).Required(FieldPassword, password).Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByEmail(context, strings.ToLower(strings.TrimSpace(login)))
	if isNotFound(err) {
		user, err = service.userRepository.FindByUsername(context, strings.TrimSpace(login))
	}
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !sec.CheckPasswordHash(password, hash) {
		return nil, ErrInvalidCredentials
	}

	issued, err := service.tokenProvider.Issue(user.ID, user.Username, user.Role, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &LoginResult{
		AccessToken: issued.Token,
		ExpiresAt:   issued.ExpiresAt,
		User:        user,
	}, nil
}

/*
Authenticate resolves an access token to the caller's user ID.

Returns:
  - string: the user ID carried by the token
  - error: apperr.Unauthorized for missing, expired or forged tokens
*/
func (service *Service) Authenticate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.Unauthorized("Authentication required")
	}

	claims, err := service.tokenProvider.VerifyToken(token)
	if err != nil {
		return "", apperr.Unauthorized("Invalid or expired token").WithCause(err)
	}
	return claims.UserID, nil
}

// Me returns the profile of the authenticated account.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// errUserNotFound matches any NOT_FOUND AppError via [apperr.AppError.Is].
var errUserNotFound = apperr.NotFound("User")

func isNotFound(err error) bool {
	return err != nil && errors.Is(err, errUserNotFound)
}
