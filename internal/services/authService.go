package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/arzan03/StoreFront/internal/apperr"
	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword compares a plain password with a hashed password
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateJWT signs a token carrying the user id and role.
func GenerateJWT(secret []byte, userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

type AuthService struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
	log    *logger.Logger
}

func NewAuthService(users store.UserStore, cfg config.AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		log:    log.WithComponent("auth"),
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the default role.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	hashedPassword, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Password:  hashedPassword,
		Role:      models.RoleUser,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	s.log.Info("user registered", "user_id", user.ID.Hex())
	return user, nil
}

// Login authenticates a user and returns a JWT with role info
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	if !VerifyPassword(in.Password, user.Password) {
		s.log.Warn("login rejected", "user_id", user.ID.Hex())
		return nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := GenerateJWT(s.secret, user.ID.Hex(), user.Role, s.ttl)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}
	return &Session{Token: token, User: user}, nil
}

func (s *AuthService) Profile(ctx context.Context, caller models.Caller) (*models.User, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller models.Caller, in ProfileInput) (*models.User, error) {
	upd := store.ProfileUpdate{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.InvalidArgument("name cannot be empty")
		}
		upd.Name = &name
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
		upd.Email = &email
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		upd.Phone = &phone
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, caller.UserID, upd)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflict("email already in use")
		}
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "user not found")
	}
	return user, nil
}
