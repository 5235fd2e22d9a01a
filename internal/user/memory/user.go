package memory

import (
	"context"
	"sync"

	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
	"github.com/frahmantamala/leave-management/internal/user"
)

// Repository keeps users in a map guarded by a mutex. Values are copied on the
// way in and out.
type Repository struct {
	mu    sync.RWMutex
	users map[string]userDatamodel.User
}

func NewUserRepository() *Repository {
	return &Repository{users: make(map[string]userDatamodel.User)}
}

var _ user.RepositoryAPI = (*Repository)(nil)

func (r *Repository) Create(_ context.Context, u *userDatamodel.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Username]; exists {
		return user.ErrDuplicateUsername
	}
	r.users[u.Username] = *u
	return nil
}

func (r *Repository) FindByUsername(_ context.Context, username string) (*userDatamodel.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, false, nil
	}
	return &u, true, nil
}
