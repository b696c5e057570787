package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/database/dbtest"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

func TestUserCreateHashesPassword(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	user := &domain.User{Login: "alice", Password: "secret123", Mail: "alice@example.com"}
	id, err := s.Create(ctx, user)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.FindOneByLogin(ctx, "alice")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got == nil || got.ID != id {
		t.Fatalf("expected user %d, got %+v", id, got)
	}
	if got.Password != "hashed:secret123" {
		t.Errorf("expected hashed password, got %q", got.Password)
	}
	if got.RoleID != domain.RoleUserID {
		t.Errorf("expected default role %d, got %d", domain.RoleUserID, got.RoleID)
	}

	if _, err := s.Create(ctx, &domain.User{Login: "alice", Password: "other", Mail: "x@example.com"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate login, got %v", err)
	}
}

func TestUserUpdateKeepsLogin(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	id := dbtest.InsertUser(t, db, "alice", false)

	n, err := s.Update(ctx, &domain.User{ID: id, Login: "mallory", Mail: "new@example.com"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	got, err := s.FindOneByID(ctx, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Login != "alice" || got.Mail != "new@example.com" {
		t.Errorf("unexpected user after update: %+v", got)
	}
	if got.Password != "hashed:alice" {
		t.Errorf("empty password must keep the old hash, got %q", got.Password)
	}

	if _, err := s.Update(ctx, &domain.User{ID: id, Mail: "new@example.com", Password: "changed1"}); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, _ = s.FindOneByID(ctx, id)
	if got.Password != "hashed:changed1" {
		t.Errorf("expected new hash, got %q", got.Password)
	}
}

func TestUserFindForUniqueness(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	id := dbtest.InsertUser(t, db, "alice", false)

	tests := []struct {
		name      string
		login     string
		excludeID int64
		found     bool
	}{
		{"taken by someone else", "alice", 0, true},
		{"same record excluded", "alice", id, false},
		{"free login", "bob", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.FindForUniqueness(ctx, tt.login, tt.excludeID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got != nil) != tt.found {
				t.Errorf("expected found=%v, got %+v", tt.found, got)
			}
		})
	}
}

func TestUserLoadUserByLogin(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	id := dbtest.InsertUser(t, db, "root", true)

	creds, err := s.LoadUserByLogin(ctx, "root")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if creds.ID != id || creds.Password != "hashed:root" {
		t.Errorf("unexpected credentials: %+v", creds)
	}
	if !reflect.DeepEqual(creds.Roles, []string{domain.RoleAdmin}) {
		t.Errorf("expected admin role, got %v", creds.Roles)
	}

	if _, err := s.LoadUserByLogin(ctx, "ghost"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown login, got %v", err)
	}
}

func TestUserCreateEmptyUserdata(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	id, err := s.Create(ctx, &domain.User{Login: "alice", Password: "secret123", Mail: "a@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.createEmptyUserdata(ctx, db, id); err != nil {
		t.Fatalf("create userdata: %v", err)
	}
	if n := dbtest.Count(t, db, "userdata", "user_id = ? AND name = '' AND surname = ''", id); n != 1 {
		t.Errorf("expected one empty userdata row, got %d", n)
	}
	if _, err := s.createEmptyUserdata(ctx, db, 0); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestUserSaveDispatchesOnVariant(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	res, err := s.Save(ctx, domain.NewRecord(domain.User{Login: "alice", Password: "secret123", Mail: "a@example.com"}))
	if err != nil || !res.Created {
		t.Fatalf("expected insert, got %+v, %v", res, err)
	}
	res, err = s.Save(ctx, domain.Existing(res.ID, domain.User{Mail: "b@example.com"}))
	if err != nil || res.Created || res.RowsAffected != 1 {
		t.Fatalf("expected update, got %+v, %v", res, err)
	}
	if n := dbtest.Count(t, db, "users", ""); n != 1 {
		t.Errorf("expected 1 user, got %d", n)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	alice := dbtest.InsertUser(t, db, "alice", false)
	bob := dbtest.InsertUser(t, db, "bob", false)
	tag := dbtest.InsertTag(t, db, "sea")

	alicePhoto := dbtest.InsertPhoto(t, db, alice, "alice-photo", base)
	bobPhoto := dbtest.InsertPhoto(t, db, bob, "bob-photo", base)
	dbtest.LinkTag(t, db, alicePhoto, tag)
	dbtest.LinkTag(t, db, bobPhoto, tag)

	// bob на фото alice, alice на фото bob
	dbtest.InsertRating(t, db, alicePhoto, bob, 3)
	dbtest.InsertComment(t, db, alicePhoto, bob, "from bob", base)
	dbtest.InsertRating(t, db, bobPhoto, alice, 5)
	dbtest.InsertComment(t, db, bobPhoto, alice, "from alice", base)
	dbtest.InsertComment(t, db, bobPhoto, bob, "own", base)

	removed, err := NewUserStorage(db, prefixHasher{}, testLogger()).Delete(ctx, alice)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(removed.PhotoIDs, []int64{alicePhoto}) {
		t.Errorf("expected removed photos %v, got %v", []int64{alicePhoto}, removed.PhotoIDs)
	}
	if !reflect.DeepEqual(removed.Sources, []string{"photos/alice-photo.jpg"}) {
		t.Errorf("unexpected removed sources %v", removed.Sources)
	}

	checks := []struct {
		table string
		where string
		args  []any
		want  int
	}{
		{"users", "id = ?", []any{alice}, 0},
		{"userdata", "user_id = ?", []any{alice}, 0},
		{"photos", "user_id = ?", []any{alice}, 0},
		{"ratings", "photo_id = ? OR user_id = ?", []any{alicePhoto, alice}, 0},
		{"comments", "photo_id = ? OR user_id = ?", []any{alicePhoto, alice}, 0},
		{"photo_tags", "photo_id = ?", []any{alicePhoto}, 0},
		{"users", "id = ?", []any{bob}, 1},
		{"photos", "id = ?", []any{bobPhoto}, 1},
		{"comments", "photo_id = ?", []any{bobPhoto}, 1},
		{"photo_tags", "photo_id = ?", []any{bobPhoto}, 1},
	}
	for _, c := range checks {
		if n := dbtest.Count(t, db, c.table, c.where, c.args...); n != c.want {
			t.Errorf("%s where %s %v: expected %d rows, got %d", c.table, c.where, c.args, c.want, n)
		}
	}
}

func TestUserDeleteIsAtomic(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	alice := dbtest.InsertUser(t, db, "alice", false)
	photo := dbtest.InsertPhoto(t, db, alice, "p", base)
	dbtest.InsertRating(t, db, photo, alice, 4)
	dbtest.InsertComment(t, db, photo, alice, "mine", base)

	failOnDelete(t, db, "users")

	_, err := NewUserStorage(db, prefixHasher{}, testLogger()).Delete(ctx, alice)
	if !isInducedFailure(err) {
		t.Fatalf("expected induced failure, got %v", err)
	}

	for _, table := range []string{"ratings", "comments", "photos", "userdata"} {
		if n := dbtest.Count(t, db, table, "user_id = ?", alice); n != 1 {
			t.Errorf("%s: expected rollback to keep 1 row, got %d", table, n)
		}
	}
	if n := dbtest.Count(t, db, "users", "id = ?", alice); n != 1 {
		t.Errorf("expected user to stay, got %d", n)
	}
}

func TestUserRegisterCreatesUserdata(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	user := &domain.User{Login: "alice", Password: "secret123", Mail: "alice@example.com"}
	id, err := s.Register(ctx, user)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != id || user.Password != "hashed:secret123" {
		t.Errorf("unexpected user after register %+v", user)
	}
	if n := dbtest.Count(t, db, "userdata", "user_id = ? AND name = '' AND surname = ''", id); n != 1 {
		t.Errorf("expected empty userdata, got %d", n)
	}

	if _, err := s.Register(ctx, &domain.User{Login: "alice", Password: "other", Mail: "x@example.com"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("expected ErrConflict on duplicate login, got %v", err)
	}
}

func TestUserRegisterIsAtomic(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	s := NewUserStorage(db, prefixHasher{}, testLogger())

	failOnInsert(t, db, "userdata")

	user := &domain.User{Login: "alice", Password: "secret123", Mail: "alice@example.com"}
	if _, err := s.Register(ctx, user); !isInducedFailure(err) {
		t.Fatalf("expected induced failure, got %v", err)
	}
	if user.ID != 0 {
		t.Errorf("expected id to be reset after rollback, got %d", user.ID)
	}
	if n := dbtest.Count(t, db, "users", "login = ?", "alice"); n != 0 {
		t.Errorf("expected user insert to be rolled back, got %d rows", n)
	}
}
