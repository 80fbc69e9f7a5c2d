package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/phenrril/kiddocorner/internal/domain"
)

var ErrUnauthorized = errors.New("unauthorized")

const adminTokenTTL = 6 * time.Hour

// AdminClaims is the payload of an admin session token.
type AdminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthUC struct {
	Admins domain.AdminRepo
	Secret []byte
	Now    func() time.Time
}

func (uc *AuthUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Login checks an email and password against admin_users.
func (uc *AuthUC) Login(ctx context.Context, email, password string) (string, error) {
	u, err := uc.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !u.IsAdmin || u.PasswordHash == "" || !CheckPassword(u.PasswordHash, password) {
		return "", ErrUnauthorized
	}
	return uc.IssueToken(u)
}

// LoginVerifiedEmail is used after Google has confirmed the address.
func (uc *AuthUC) LoginVerifiedEmail(ctx context.Context, email string) (string, error) {
	u, err := uc.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if !u.IsAdmin {
		return "", ErrUnauthorized
	}
	return uc.IssueToken(u)
}

func (uc *AuthUC) IssueToken(u *domain.AdminUser) (string, error) {
	if len(uc.Secret) == 0 {
		return "", errors.New("admin secret not configured")
	}
	now := uc.now()
	claims := AdminClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.Secret)
}

func (uc *AuthUC) Verify(token string) (*AdminClaims, error) {
	if token == "" || len(uc.Secret) == 0 {
		return nil, ErrUnauthorized
	}
	parsed, err := jwt.ParseWithClaims(token, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		return uc.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(uc.now))
	if err != nil {
		return nil, ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// EnsureAdmin creates or updates an admin account.
func (uc *AuthUC) EnsureAdmin(ctx context.Context, email, name, password string) (*domain.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.Invalid("Admin needs an email")
	}
	u, err := uc.Admins.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		u = &domain.AdminUser{ID: uuid.New(), Email: email, CreatedAt: uc.now()}
	} else if err != nil {
		return nil, err
	}
	u.IsAdmin = true
	if name != "" {
		u.Name = name
	}
	if password != "" {
		if len(password) < 8 {
			return nil, domain.Invalid("Password must have at least 8 characters")
		}
		if u.PasswordHash, err = HashPassword(password); err != nil {
			return nil, err
		}
	}
	if err := uc.Admins.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
