package application

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultRoleName = "USER"

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrTokenInvalid       = fmt.Errorf("token invalid")
)

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthService handles user registration, credential checks and JWT issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (string, error)
	Me(ctx context.Context, token string) (*User, error)
}

type AuthServiceParams struct {
	Users UserRepository
	Roles RoleRepository

	JWTSecret string
	TokenTTL  time.Duration

	Log zerolog.Logger
}

type authService struct {
	users  UserRepository
	roles  RoleRepository
	secret []byte
	ttl    time.Duration

	log zerolog.Logger
}

func NewAuthService(params AuthServiceParams) (AuthService, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("UserRepository is nil")
	}
	if params.Roles == nil {
		return nil, fmt.Errorf("RoleRepository is nil")
	}
	if params.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is empty")
	}
	if params.TokenTTL == 0 {
		params.TokenTTL = 24 * time.Hour
	}
	return &authService{
		users:  params.Users,
		roles:  params.Roles,
		secret: []byte(params.JWTSecret),
		ttl:    params.TokenTTL,
		log:    params.Log,
	}, nil
}

// Register creates a user with the default USER role, creating that role on
// first use. The email must not already be registered.
func (a *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if existing, err := a.users.GetByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role, err := a.roles.GetByName(ctx, defaultRoleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		role = &Role{Name: defaultRoleName, Description: "Default user role"}
		if err := a.roles.Create(ctx, role); err != nil {
			return nil, err
		}
	}

	user := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Roles:        []Role{*role},
	}
	if err := a.users.Create(ctx, user); err != nil {
		return nil, err
	}

	a.log.Debug().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks the credentials and returns a signed access token.
func (a *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	user, err := a.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	ok, err := VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	roleNames := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			ID:        uuid.NewString(),
		},
		Email: user.Email,
		Roles: roleNames,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}

	a.log.Debug().Str("user_id", user.ID).Msg("user logged in")
	return signed, nil
}

// Me resolves the user behind a bearer token.
func (a *authService) Me(ctx context.Context, token string) (*User, error) {
	claims, err := a.ParseToken(token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ParseToken validates signature and expiry and returns the claims.
func (a *authService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
