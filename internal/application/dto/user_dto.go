package dto

import (
	"time"

	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
)

// RegisterRequest entrada para registro. Llega como JSON o como formulario de la vista /register.
type RegisterRequest struct {
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Age       int    `json:"age" form:"age" validate:"gte=0,lte=150"`
	Password  string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	Role      string    `json:"role"`
	CartID    string    `json:"cart_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse convierte la entidad a DTO.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Age:       u.Age,
		Role:      u.Role,
		CartID:    u.CartID,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
