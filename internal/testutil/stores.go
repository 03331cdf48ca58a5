package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"car-blog/models"
	"car-blog/repositories"
)

// BlogStore is an in-memory blog repository. Set InsertErr or UpdateErr to
// make the next writes fail.
type BlogStore struct {
	mu        sync.Mutex
	items     map[primitive.ObjectID]models.Blog
	seq       int
	InsertErr error
	UpdateErr error
}

func NewBlogStore() *BlogStore {
	return &BlogStore{items: make(map[primitive.ObjectID]models.Blog)}
}

func (s *BlogStore) Insert(_ context.Context, b *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	// Strictly increasing timestamps keep newest-first ordering deterministic.
	s.seq++
	b.CreatedAt = time.Unix(int64(s.seq), 0).UTC()
	b.UpdatedAt = b.CreatedAt
	s.items[b.ID] = *b
	return nil
}

func (s *BlogStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func (s *BlogStore) List(_ context.Context) ([]models.Blog, error) {
	return s.filter(func(models.Blog) bool { return true }), nil
}

func (s *BlogStore) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Blog, error) {
	return s.filter(func(b models.Blog) bool { return b.Owner == owner }), nil
}

func (s *BlogStore) filter(keep func(models.Blog) bool) []models.Blog {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Blog, 0, len(s.items))
	for _, b := range s.items {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *BlogStore) Update(_ context.Context, b *models.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UpdateErr != nil {
		return s.UpdateErr
	}
	if _, ok := s.items[b.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.seq++
	b.UpdatedAt = time.Unix(int64(s.seq), 0).UTC()
	s.items[b.ID] = *b
	return nil
}

func (s *BlogStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *BlogStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// UserStore is an in-memory user repository with a unique email constraint.
type UserStore struct {
	mu    sync.Mutex
	items map[string]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{items: make(map[string]models.User)}
}

func (s *UserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range s.items {
		if existing.Email == u.Email {
			return repositories.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	s.items[u.ID.Hex()] = *u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.items {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// List orders users by email.
func (s *UserStore) List(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.items))
	for _, u := range s.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Remove deletes the account, as if it was removed after a token was issued.
func (s *UserStore) Remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id.Hex())
}
