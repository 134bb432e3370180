package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

const tokenIssuer = "recipebox"

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register creates a standard, active account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error) {
	name := strings.TrimSpace(req.Name)
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)
	if name == "" || username == "" || email == "" || req.Password == "" {
		return nil, "", apperrors.BadRequest("All fields are required")
	}

	db := s.db.WithContext(ctx)

	taken, err := exists(db.Model(&models.User{}).Where("email = ?", email))
	if err != nil {
		return nil, "", apperrors.Server("Registration failed", err)
	}
	if taken {
		return nil, "", apperrors.BadRequest("Email already registered")
	}

	taken, err = exists(db.Model(&models.User{}).Where("username = ?", username))
	if err != nil {
		return nil, "", apperrors.Server("Registration failed", err)
	}
	if taken {
		return nil, "", apperrors.BadRequest("Username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperrors.Server("Registration failed", err)
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Image:        strings.TrimSpace(req.Image),
		Role:         models.RoleUser,
		Status:       models.StatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, "", duplicateAccountError(db, email, uuid.Nil)
		}
		return nil, "", apperrors.Server("Registration failed", err)
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", apperrors.Server("Registration failed", err)
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID.String()).Msg("account registered")
	return user.Redacted(), token, nil
}

// Login checks credentials. Suspended accounts may still obtain a token;
// the access gate rejects them on use.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperrors.BadRequest("Invalid credentials")
	}
	if err != nil {
		return nil, "", apperrors.Server("Login failed", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.BadRequest("Invalid credentials")
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", apperrors.Server("Login failed", err)
	}
	return user.Redacted(), token, nil
}

// GenerateToken issues an HS256 access token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken verifies signature and expiry. Every failure is Unauthorized.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, &apperrors.Error{Kind: apperrors.KindUnauthorized, Message: "Not authorized, invalid token", Err: err}
	}
	if claims.UserID == uuid.Nil {
		return nil, apperrors.Unauthorized("Not authorized, invalid token")
	}
	return claims, nil
}

// GetUserByID loads an account, including its password hash. Callers that
// expose the account must redact it.
func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Server("Failed to fetch user", err)
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isDuplicate reports a unique index violation. Dialects GORM cannot
// translate are matched on their own error shape.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// duplicateAccountError names the field another account took between the
// availability check and the write.
func duplicateAccountError(db *gorm.DB, email string, self uuid.UUID) error {
	taken, err := exists(db.Model(&models.User{}).Where("email = ? AND id <> ?", email, self))
	if err == nil && taken {
		return apperrors.BadRequest("Email already registered")
	}
	return apperrors.BadRequest("Username already taken")
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
