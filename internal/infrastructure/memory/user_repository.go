package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/ecommerce-api/internal/domain"
	"github.com/jhoicas/ecommerce-api/internal/domain/entity"
	"github.com/jhoicas/ecommerce-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. Email es único.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

// NewUserRepository crea el almacén vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: make(map[string]*entity.User), byEmail: make(map[string]string)}
}

// Create persiste el usuario; email repetido devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = u.ID
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

// PromoteToAdmin cambia el rol del usuario a admin.
func (r *UserRepo) PromoteToAdmin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = entity.RoleAdmin
	return nil
}
