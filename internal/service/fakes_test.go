package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/repositories"
)

// fakeStore is an in-memory stand-in for the Postgres stores, shared by the
// per-interface fakes so referential integrity behaves like the real schema.
type fakeStore struct {
	mu         sync.Mutex
	users      map[int64]*models.User
	posts      map[uuid.UUID]*models.Post
	grants     map[grantKey]models.AccessLevel
	nextUserID int64
}

type grantKey struct {
	userID int64
	postID uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[int64]*models.User),
		posts:  make(map[uuid.UUID]*models.Post),
		grants: make(map[grantKey]models.AccessLevel),
	}
}

func (s *fakeStore) addUser(name string, isAdmin bool) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	user := &models.User{ID: s.nextUserID, Name: name, Password: "hash", IsAdmin: isAdmin}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addPost(authorID int64, title string, isPublic bool) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := &models.Post{ID: uuid.New(), Title: title, Text: "body", IsPublic: isPublic, AuthorID: authorID}
	s.posts[post.ID] = post
	return post
}

func (s *fakeStore) addGrant(userID int64, postID uuid.UUID, level models.AccessLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[grantKey{userID, postID}] = level
}

func (s *fakeStore) grantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}

type fakeUserRepo struct{ s *fakeStore }

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.Name == user.Name {
			return fmt.Errorf("user %q: %w", user.Name, domain.ErrConflict)
		}
	}
	f.s.nextUserID++
	user.ID = f.s.nextUserID
	stored := *user
	f.s.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	user, ok := f.s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByName(ctx context.Context, name string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, user := range f.s.users {
		if user.Name == name {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", name, domain.ErrNotFound)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	user, ok := f.s.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	user.Password = hash
	return nil
}

type fakePostRepo struct{ s *fakeStore }

func (f *fakePostRepo) Create(ctx context.Context, post *models.Post) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.posts {
		if existing.Title == post.Title {
			return fmt.Errorf("post %q: %w", post.Title, domain.ErrConflict)
		}
	}
	post.ID = uuid.New()
	stored := *post
	f.s.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	post, ok := f.s.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) List(ctx context.Context, page, count int) ([]models.PostSummary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	summaries := []models.PostSummary{}
	for _, post := range f.s.posts {
		summaries = append(summaries, models.PostSummary{ID: post.ID, Title: post.Title})
	}
	return summaries, nil
}

func (f *fakePostRepo) ListByAuthor(ctx context.Context, authorID int64) ([]models.PostSummary, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	summaries := []models.PostSummary{}
	for _, post := range f.s.posts {
		if post.AuthorID == authorID {
			summaries = append(summaries, models.PostSummary{ID: post.ID, Title: post.Title})
		}
	}
	return summaries, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.posts[post.ID]; !ok {
		return fmt.Errorf("post %s: %w", post.ID, domain.ErrNotFound)
	}
	stored := *post
	f.s.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.posts[id]; !ok {
		return fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	delete(f.s.posts, id)
	for key := range f.s.grants {
		if key.postID == id {
			delete(f.s.grants, key)
		}
	}
	return nil
}

type fakeAccessRepo struct{ s *fakeStore }

func (f *fakeAccessRepo) Create(ctx context.Context, grant *models.AccessGrant) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[grant.UserID]; !ok {
		return fmt.Errorf("user %d or post %s: %w", grant.UserID, grant.PostID, domain.ErrNotFound)
	}
	if _, ok := f.s.posts[grant.PostID]; !ok {
		return fmt.Errorf("user %d or post %s: %w", grant.UserID, grant.PostID, domain.ErrNotFound)
	}
	key := grantKey{grant.UserID, grant.PostID}
	if _, ok := f.s.grants[key]; ok {
		return fmt.Errorf("grant for user %d on post %s: %w", grant.UserID, grant.PostID, domain.ErrConflict)
	}
	f.s.grants[key] = grant.Level
	return nil
}

func (f *fakeAccessRepo) Get(ctx context.Context, userID int64, postID uuid.UUID) (*models.GrantWithHolder, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	level, ok := f.s.grants[grantKey{userID, postID}]
	if !ok {
		return nil, fmt.Errorf("grant for user %d on post %s: %w", userID, postID, domain.ErrNotFound)
	}
	holder, ok := f.s.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	return &models.GrantWithHolder{
		AccessGrant:   models.AccessGrant{UserID: userID, PostID: postID, Level: level},
		HolderIsAdmin: holder.IsAdmin,
	}, nil
}

func (f *fakeAccessRepo) UpdateLevel(ctx context.Context, userID int64, postID uuid.UUID, level models.AccessLevel) (*models.AccessGrant, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	key := grantKey{userID, postID}
	if _, ok := f.s.grants[key]; !ok {
		return nil, fmt.Errorf("grant for user %d on post %s: %w", userID, postID, domain.ErrNotFound)
	}
	f.s.grants[key] = level
	return &models.AccessGrant{UserID: userID, PostID: postID, Level: level}, nil
}

// fakeTxManager runs the function directly; the fakes have no transactions.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
