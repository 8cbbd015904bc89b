package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"upcyclehub/internal/domain/entity"
	"upcyclehub/internal/domain/repository"
	"upcyclehub/pkg/errors"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret string, jwtExpirySeconds int64) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: time.Duration(jwtExpirySeconds) * time.Second,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Avatar      string
	IsSeller    bool
	IsCollector bool
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entity.User, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("Email already in use")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if _, err := uc.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return nil, errors.Conflict("Username already in use")
	} else if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.User{
		Username:    input.Username,
		Email:       input.Email,
		Password:    string(hash),
		FullName:    input.FullName,
		Avatar:      input.Avatar,
		IsSeller:    input.IsSeller,
		IsCollector: input.IsCollector,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and mints a bearer token carrying the
// user's identity.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return "", nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.Unauthorized("Invalid credentials", nil)
	}

	token, err := uc.mintToken(user.ID)
	if err != nil {
		return "", nil, errors.Internal("Failed to create token", err)
	}
	return token, user, nil
}

func (uc *AuthUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) mintToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid": userID,
		"iat": now.Unix(),
		"exp": now.Add(uc.jwtExpiry).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
}
