package repository

import (
	"soundlift/model"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(user *model.User) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
}

// memoryUserRepository implements UserRepository over a MemoryStore.
type memoryUserRepository struct {
	s *MemoryStore
}

// NewUserRepository creates a UserRepository backed by the given store.
func NewUserRepository(s *MemoryStore) UserRepository {
	return &memoryUserRepository{s: s}
}

// CreateUser adds a new user. The ID and creation timestamp are assigned by
// the store; username and email must be unused.
func (r *memoryUserRepository) CreateUser(user *model.User) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, ErrDuplicateUser
		}
	}

	created := *user
	created.ID = r.s.newID()
	created.CreatedAt = r.s.now()
	r.s.users[created.ID] = &created

	out := created
	return &out, nil
}

// GetUserByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *memoryUserRepository) GetUserByID(id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

// GetUserByUsername retrieves a user by username. Returns (nil, nil) when absent.
func (r *memoryUserRepository) GetUserByUsername(username string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

// GetUserByEmail retrieves a user by email address. Returns (nil, nil) when absent.
func (r *memoryUserRepository) GetUserByEmail(email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}
