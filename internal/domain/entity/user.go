package entity

import "time"

// Roles válidos para User.
const (
	RoleUsuario = "usuario"
	RoleAdmin   = "admin"
)

// Roles conjunto cerrado de roles que consulta el middleware de autorización.
var Roles = []string{RoleUsuario, RoleAdmin}

// IsValidRole indica si role pertenece al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa un usuario registrado. Email es único.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Age          int
	PasswordHash string // bcrypt hash, nunca texto plano
	Role         string // usuario, admin
	CartID       string // carrito asignado al registrarse
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
