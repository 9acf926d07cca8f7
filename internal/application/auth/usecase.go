package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ecommerce-api/internal/application/dto"
	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
	"github.com/jhoicas/ecommerce-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y usuario actual.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cartRepo repository.CartRepository
	jwtCfg   JWTConfig
	// cost de bcrypt; configurable para que los tests no paguen DefaultCost.
	cost int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, cartRepo repository.CartRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, cartRepo: cartRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost}
}

// WithBcryptCost cambia el costo de bcrypt (mínimo bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	uc.cost = cost
	return uc
}

// Register crea un usuario con rol "usuario" y un carrito vacío propio.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	cart, err := uc.cartRepo.Create(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: string(hash),
		Role:         entity.RoleUsuario,
		CartID:       cart.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// el carrito no debe quedar huérfano
		if delErr := uc.cartRepo.Delete(ctx, cart.ID); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Role:      user.Role,
		CartID:    user.CartID,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}

// Current devuelve el usuario dueño del token.
func (uc *AuthUseCase) Current(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(user)
	return &out, nil
}
