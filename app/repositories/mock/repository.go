package mock

import (
	"context"
	"sync"

	"yatube/app/apperrors"
	"yatube/app/models"
	"yatube/app/repositories"
)

type followKey struct {
	user, author uint
}

// FollowRepository is an in-memory FollowRepository. Setting Race makes the
// next Create behave as if another request inserted the same pair between
// the caller's existence check and its insert.
type FollowRepository struct {
	follows map[followKey]*models.Follow
	nextID  uint
	mutex   sync.RWMutex

	Race    bool
	Creates int
}

func NewFollowRepository() *FollowRepository {
	return &FollowRepository{
		follows: make(map[followKey]*models.Follow),
		nextID:  1,
	}
}

func (m *FollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := follow.Validate(); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.Creates++
	key := followKey{follow.UserID, follow.AuthorID}
	if m.Race {
		m.Race = false
		m.follows[key] = &models.Follow{ID: m.nextID, UserID: follow.UserID, AuthorID: follow.AuthorID}
		m.nextID++
	}
	if _, exists := m.follows[key]; exists {
		return repositories.ErrAlreadyFollowing
	}

	follow.ID = m.nextID
	m.nextID++
	m.follows[key] = follow
	return nil
}

func (m *FollowRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.follows[followKey{userID, authorID}]
	return exists, nil
}

func (m *FollowRepository) Delete(ctx context.Context, userID, authorID uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	key := followKey{userID, authorID}
	if _, exists := m.follows[key]; !exists {
		return repositories.ErrFollowNotFound
	}
	delete(m.follows, key)
	return nil
}

func (m *FollowRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var n int64
	for k := range m.follows {
		if k.author == authorID {
			n++
		}
	}
	return n, nil
}

func (m *FollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var n int64
	for k := range m.follows {
		if k.user == userID {
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored follows.
func (m *FollowRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.follows)
}

// UserRepository is an in-memory UserRepository.
type UserRepository struct {
	users  map[uint]*models.User
	nextID uint
	mutex  sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, u := range m.users {
		if u.Username == user.Username {
			return apperrors.NewConflictError("username is already taken")
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.users[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

var (
	_ repositories.FollowRepository = (*FollowRepository)(nil)
	_ repositories.UserRepository   = (*UserRepository)(nil)
)
