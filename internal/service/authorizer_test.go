package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"quill/internal/domain"
	"quill/internal/domain/models"
	"quill/internal/domain/services"
)

func newTestAuthorizer(store *fakeStore) services.Authorizer {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthorizer(&fakePostRepo{store}, &fakeAccessRepo{store}, logger)
}

func TestAuthorize_PublicPostReadableWithoutGrant(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	reader := store.addUser("reader", false)
	post := store.addPost(owner.ID, "public post", true)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	if err := authz.Authorize(ctx, reader.ID, post.ID, models.OpRead); err != nil {
		t.Errorf("read of public post denied: %v", err)
	}

	// Publicity never grants write access.
	if err := authz.Authorize(ctx, reader.ID, post.ID, models.OpEdit); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("edit of public post = %v, want ErrForbidden", err)
	}
}

func TestAuthorize_OwnerAlwaysAllowed(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	post := store.addPost(owner.ID, "private post", false)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	for _, op := range []models.Operation{models.OpRead, models.OpEdit, models.OpDelete} {
		if err := authz.Authorize(ctx, owner.ID, post.ID, op); err != nil {
			t.Errorf("owner %s denied: %v", op, err)
		}
	}
}

func TestAuthorize_OwnerUnaffectedByOwnGrantRow(t *testing.T) {
	// A stray NONE grant for the owner must not lock the owner out;
	// ownership is authoritative independent of the grant table.
	store := newFakeStore()
	owner := store.addUser("owner", false)
	post := store.addPost(owner.ID, "private post", false)
	store.addGrant(owner.ID, post.ID, models.LevelNone)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	for _, op := range []models.Operation{models.OpRead, models.OpEdit, models.OpDelete} {
		if err := authz.Authorize(ctx, owner.ID, post.ID, op); err != nil {
			t.Errorf("owner with explicit NONE grant denied %s: %v", op, err)
		}
	}
}

func TestAuthorize_ExplicitNoneOverridesPublicRead(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	outcast := store.addUser("outcast", false)
	post := store.addPost(owner.ID, "public post", true)
	store.addGrant(outcast.ID, post.ID, models.LevelNone)

	authz := newTestAuthorizer(store)

	err := authz.Authorize(context.Background(), outcast.ID, post.ID, models.OpRead)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("read with explicit NONE grant on public post = %v, want ErrForbidden", err)
	}
}

func TestAuthorize_AdminGrantBypassesLevels(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	admin := store.addUser("admin", true)
	post := store.addPost(owner.ID, "private post", false)
	store.addGrant(admin.ID, post.ID, models.LevelNone)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	for _, op := range []models.Operation{models.OpRead, models.OpEdit, models.OpDelete} {
		if err := authz.Authorize(ctx, admin.ID, post.ID, op); err != nil {
			t.Errorf("admin with NONE grant denied %s: %v", op, err)
		}
	}
}

func TestAuthorize_GrantLevelProgression(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	viewer := store.addUser("viewer", false)
	post := store.addPost(owner.ID, "private post", false)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	// No grant on a private post: nothing is allowed.
	if err := authz.Authorize(ctx, viewer.ID, post.ID, models.OpRead); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("read without grant = %v, want ErrForbidden", err)
	}

	store.addGrant(viewer.ID, post.ID, models.LevelRead)
	if err := authz.Authorize(ctx, viewer.ID, post.ID, models.OpRead); err != nil {
		t.Errorf("read with read grant denied: %v", err)
	}
	if err := authz.Authorize(ctx, viewer.ID, post.ID, models.OpEdit); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("edit with read grant = %v, want ErrForbidden", err)
	}

	store.addGrant(viewer.ID, post.ID, models.LevelReadWrite)
	if err := authz.Authorize(ctx, viewer.ID, post.ID, models.OpEdit); err != nil {
		t.Errorf("edit with read-write grant denied: %v", err)
	}
	if err := authz.Authorize(ctx, viewer.ID, post.ID, models.OpDelete); err != nil {
		t.Errorf("delete with read-write grant denied: %v", err)
	}
}

func TestAuthorize_MissingPostIsNotFound(t *testing.T) {
	store := newFakeStore()
	actor := store.addUser("actor", false)

	authz := newTestAuthorizer(store)

	err := authz.Authorize(context.Background(), actor.ID, uuid.New(), models.OpRead)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("authorize against missing post = %v, want ErrNotFound", err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		t.Error("missing post reported as a denial")
	}
}

func TestAuthorize_CreateIsAlwaysAllowed(t *testing.T) {
	store := newFakeStore()
	actor := store.addUser("actor", false)

	authz := newTestAuthorizer(store)

	if err := authz.Authorize(context.Background(), actor.ID, uuid.Nil, models.OpCreate); err != nil {
		t.Errorf("create denied: %v", err)
	}
}

func TestCheckAccess(t *testing.T) {
	store := newFakeStore()
	owner := store.addUser("owner", false)
	other := store.addUser("other", false)
	post := store.addPost(owner.ID, "private post", false)

	authz := newTestAuthorizer(store)
	ctx := context.Background()

	if !authz.CheckAccess(ctx, owner.ID, post.ID, models.OpRead) {
		t.Error("owner read reported as denied")
	}
	if authz.CheckAccess(ctx, other.ID, post.ID, models.OpRead) {
		t.Error("stranger read of private post reported as allowed")
	}
	if authz.CheckAccess(ctx, other.ID, uuid.New(), models.OpRead) {
		t.Error("read of missing post reported as allowed")
	}
}
