package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reachfood/reachfood-api/models"
	"github.com/reachfood/reachfood-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Token types carried in the JWT payload. The type field prevents a refresh
// token from being accepted as an access token and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgInvalidTokenType   = "Invalid token type"
	msgRefreshExpired     = "Refresh token expired"
	msgInvalidRefresh     = "Invalid refresh token"
	msgUserGone           = "User not found or inactive"
)

type TokenClaims struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

type AuthService struct {
	db            *gorm.DB
	accessSecret  []byte
	refreshSecret []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:            db,
		accessSecret:  []byte(os.Getenv("JWT_ACCESS_SECRET")),
		refreshSecret: []byte(os.Getenv("JWT_REFRESH_SECRET")),
		accessExpiry:  durationFromEnv("JWT_ACCESS_EXPIRY", 15*time.Minute),
		refreshExpiry: durationFromEnv("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// AdminProfile is the public view of an admin user. The password hash never
// leaves the service.
type AdminProfile struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type LoginResult struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         AdminProfile `json:"user"`
}

type CreateAdminInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=admin super_admin"`
}

func profileOf(admin *models.AdminUser) AdminProfile {
	return AdminProfile{
		ID:        admin.ID,
		Email:     admin.Email,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		Role:      admin.Role,
		LastLogin: admin.LastLogin,
		CreatedAt: admin.CreatedAt,
	}
}

// Login authenticates an admin by email and password. Unknown email, inactive
// account and wrong password all fail with the same message so callers cannot
// enumerate users.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var admin models.AdminUser
	err := s.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, err
	}
	if !admin.IsActive {
		return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewUnauthorizedError(msgInvalidCredentials)
	}

	now := time.Now()
	if err := s.db.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}
	admin.LastLogin = &now

	accessToken, err := s.generateToken(&admin, TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(&admin, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         profileOf(&admin),
	}, nil
}

func (s *AuthService) generateToken(admin *models.AdminUser, tokenType string) (string, error) {
	secret := s.accessSecret
	expiry := s.accessExpiry
	if tokenType == TokenTypeRefresh {
		secret = s.refreshSecret
		expiry = s.refreshExpiry
	}

	claims := TokenClaims{
		UserID: admin.ID,
		Email:  admin.Email,
		Role:   admin.Role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseToken(tokenString string, secret []byte) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

// RefreshAccessToken verifies a refresh token and issues a new access token.
// Expiry gets a distinct message for clearer client handling.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := parseToken(refreshToken, s.refreshSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", utils.NewUnauthorizedError(msgRefreshExpired)
		}
		return "", utils.NewUnauthorizedError(msgInvalidRefresh)
	}
	if claims.Type != TokenTypeRefresh {
		return "", utils.NewUnauthorizedError(msgInvalidTokenType)
	}

	var admin models.AdminUser
	if err := s.db.First(&admin, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", utils.NewUnauthorizedError(msgUserGone)
		}
		return "", err
	}
	if !admin.IsActive {
		return "", utils.NewUnauthorizedError(msgUserGone)
	}

	return s.generateToken(&admin, TokenTypeAccess)
}

// VerifyAccessToken validates a bearer token for the auth middleware.
func (s *AuthService) VerifyAccessToken(accessToken string) (*TokenClaims, error) {
	claims, err := parseToken(accessToken, s.accessSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewUnauthorizedError("Access token expired")
		}
		return nil, utils.NewUnauthorizedError("Invalid access token")
	}
	if claims.Type != TokenTypeAccess {
		return nil, utils.NewUnauthorizedError(msgInvalidTokenType)
	}
	return claims, nil
}

func (s *AuthService) GetProfile(userID uint) (*AdminProfile, error) {
	var admin models.AdminUser
	if err := s.db.First(&admin, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, err
	}
	profile := profileOf(&admin)
	return &profile, nil
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	var admin models.AdminUser
	if err := s.db.First(&admin, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewNotFoundError("User not found")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return utils.NewBadRequestError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.db.Model(&admin).Update("password_hash", string(hash)).Error
}

// CreateAdmin registers a new admin user, defaulting the role to admin.
func (s *AuthService) CreateAdmin(input CreateAdminInput) (*AdminProfile, error) {
	var existing models.AdminUser
	err := s.db.Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, utils.NewBadRequestError("Email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = models.RoleAdmin
	}

	admin := models.AdminUser{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	profile := profileOf(&admin)
	return &profile, nil
}
