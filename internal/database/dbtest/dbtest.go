// Package dbtest поднимает in-memory SQLite с той же схемой, что и миграции Postgres.
// Внешние ключи не включены: каскадное удаление должно выполняться кодом репозиториев.
package dbtest

import (
	"testing"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

const Schema = `
CREATE TABLE roles (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
INSERT INTO roles (id, name) VALUES (1, 'ROLE_ADMIN'), (2, 'ROLE_USER');

CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	login TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	mail TEXT NOT NULL,
	role_id INTEGER NOT NULL REFERENCES roles (id)
);

CREATE TABLE userdata (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL UNIQUE REFERENCES users (id) ON DELETE CASCADE,
	name TEXT NOT NULL DEFAULT '',
	surname TEXT NOT NULL DEFAULT ''
);

CREATE TABLE photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	source TEXT NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	publication_date DATETIME NOT NULL
);

CREATE TABLE tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE photo_tags (
	photo_id INTEGER NOT NULL REFERENCES photos (id) ON DELETE CASCADE,
	tag_id INTEGER NOT NULL REFERENCES tags (id) ON DELETE CASCADE,
	PRIMARY KEY (photo_id, tag_id)
);

CREATE TABLE ratings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	value INTEGER NOT NULL CHECK (value BETWEEN 1 AND 5),
	photo_id INTEGER NOT NULL REFERENCES photos (id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	UNIQUE (user_id, photo_id)
);

CREATE TABLE comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	publication_date DATETIME NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	photo_id INTEGER NOT NULL REFERENCES photos (id) ON DELETE CASCADE
);
`

// Open создает новую пустую базу для одного теста.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}
	// у каждого соединения своя :memory: база
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("failed applying schema: %v", err)
	}
	return db
}

// InsertUser добавляет пользователя с ролью ROLE_USER (или ROLE_ADMIN при admin=true) и пустыми userdata.
func InsertUser(t testing.TB, db *sqlx.DB, login string, admin bool) int64 {
	t.Helper()

	role := 2
	if admin {
		role = 1
	}
	var id int64
	err := db.QueryRowx(
		`INSERT INTO users (login, password, mail, role_id) VALUES (?, ?, ?, ?) RETURNING id`,
		login, "hashed:"+login, login+"@example.com", role,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed inserting user %q: %v", login, err)
	}
	if _, err := db.Exec(`INSERT INTO userdata (user_id, name, surname) VALUES (?, '', '')`, id); err != nil {
		t.Fatalf("failed inserting userdata for %q: %v", login, err)
	}
	return id
}

// InsertPhoto добавляет фото с датой публикации published.
func InsertPhoto(t testing.TB, db *sqlx.DB, userID int64, title string, published time.Time) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowx(
		`INSERT INTO photos (title, source, user_id, publication_date) VALUES (?, ?, ?, ?) RETURNING id`,
		title, "photos/"+title+".jpg", userID, published.UTC(),
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed inserting photo %q: %v", title, err)
	}
	return id
}

// InsertTag добавляет тег.
func InsertTag(t testing.TB, db *sqlx.DB, name string) int64 {
	t.Helper()

	var id int64
	if err := db.QueryRowx(`INSERT INTO tags (name) VALUES (?) RETURNING id`, name).Scan(&id); err != nil {
		t.Fatalf("failed inserting tag %q: %v", name, err)
	}
	return id
}

// LinkTag связывает фото и тег.
func LinkTag(t testing.TB, db *sqlx.DB, photoID, tagID int64) {
	t.Helper()

	if _, err := db.Exec(`INSERT INTO photo_tags (photo_id, tag_id) VALUES (?, ?)`, photoID, tagID); err != nil {
		t.Fatalf("failed linking photo %d with tag %d: %v", photoID, tagID, err)
	}
}

// InsertRating добавляет оценку.
func InsertRating(t testing.TB, db *sqlx.DB, photoID, userID int64, value int) {
	t.Helper()

	if _, err := db.Exec(`INSERT INTO ratings (value, photo_id, user_id) VALUES (?, ?, ?)`, value, photoID, userID); err != nil {
		t.Fatalf("failed inserting rating: %v", err)
	}
}

// InsertComment добавляет комментарий.
func InsertComment(t testing.TB, db *sqlx.DB, photoID, userID int64, text string, published time.Time) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowx(
		`INSERT INTO comments (text, publication_date, user_id, photo_id) VALUES (?, ?, ?, ?) RETURNING id`,
		text, published.UTC(), userID, photoID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed inserting comment: %v", err)
	}
	return id
}

// Count возвращает число строк таблицы, удовлетворяющих where (например "photo_id = ?").
func Count(t testing.TB, db *sqlx.DB, table, where string, args ...any) int {
	t.Helper()

	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := db.Get(&n, q, args...); err != nil {
		t.Fatalf("failed counting %s: %v", table, err)
	}
	return n
}
