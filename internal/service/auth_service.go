package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"craftmarket/internal/auth"
	"craftmarket/internal/errors"
	"craftmarket/internal/model"
	"craftmarket/internal/repository"
)

const bcryptCost = 12

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// UpdateProfileInput carries a validated profile update. Password fields are
// empty when the password is not being changed; AvatarPath is empty when no
// new avatar was uploaded.
type UpdateProfileInput struct {
	Name            string
	Email           string
	Phone           string
	CurrentPassword string
	NewPassword     string
	AvatarPath      string
}

// AuthService orchestrates the session lifecycle: registration, login,
// logout and profile operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
	BecomeMaster(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	jwt      *auth.JWTService
	sessions auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		users:    users,
		jwt:      jwtService,
		sessions: sessions,
	}
}

// Register creates a buyer account with a hashed password. Emails are
// case-folded so uniqueness is case-insensitive.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := foldEmail(in.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         model.RoleBuyer,
		IsVerified:   false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login authenticates the credentials, issues a token and best-effort caches
// it as a live session. Unknown email and wrong password produce the same
// error so the response never reveals which check failed.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, foldEmail(email))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user.ID, user.Role, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	claims := &auth.Claims{UserID: user.ID.String(), Role: user.Role, Email: user.Email}
	if err := s.sessions.Save(ctx, token, claims); err != nil {
		// Non-fatal: the token stays usable through the degraded guard path.
		log.Printf("auth: session not cached: %v", err)
	}

	return token, user, nil
}

// Logout revokes the token's session entry, best-effort. The client always
// sees success; a degraded cache only costs us early revocation.
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		log.Printf("auth: session not removed: %v", err)
	}
	return nil
}

// CurrentUser reloads the identity behind a validated token.
func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.loadUser(ctx, userID)
}

// BecomeMaster applies the one-way buyer -> master upgrade.
func (s *authService) BecomeMaster(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.PromoteToMaster(); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a profile edit as a single record update. Email moves
// are rejected when the address belongs to a different account; password
// changes require the current password to verify first.
func (s *authService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*model.User, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := foldEmail(in.Email)
	if email != user.Email {
		other, err := s.users.FindByEmail(ctx, email)
		if err == nil && other != nil && other.ID != user.ID {
			return nil, errors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return nil, errors.ErrWrongCurrentPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	user.Phone = strings.TrimSpace(in.Phone)
	if in.AvatarPath != "" {
		user.Avatar = in.AvatarPath
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *authService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
