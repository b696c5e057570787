package paginator

import (
	"context"
	"fmt"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/database/dbtest"
)

type item struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func TestTotalPages(t *testing.T) {
	testCases := []struct {
		name  string
		total int64
		size  int
		want  int
	}{
		{name: "empty", total: 0, size: 4, want: 0},
		{name: "less than one page", total: 3, size: 4, want: 1},
		{name: "exact pages", total: 8, size: 4, want: 2},
		{name: "partial last page", total: 9, size: 4, want: 3},
		{name: "invalid size", total: 9, size: 0, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TotalPages(tc.total, tc.size); got != tc.want {
				t.Fatalf("expected %d pages, got %d", tc.want, got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := Offset(3, 6); got != 12 {
		t.Fatalf("expected offset 12, got %d", got)
	}
	if got := Offset(-2, 6); got != 0 {
		t.Fatalf("expected offset 0 for page below one, got %d", got)
	}
}

func TestPaginate(t *testing.T) {
	db := dbtest.Open(t)
	db.MustExec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	for i := 1; i <= 10; i++ {
		db.MustExec(`INSERT INTO items (id, name) VALUES (?, ?)`, i, fmt.Sprintf("item-%02d", i))
	}
	q := Query{
		Select: `SELECT id, name FROM items ORDER BY id DESC`,
		Count:  `SELECT COUNT(*) FROM items`,
	}

	testCases := []struct {
		name      string
		page      int
		wantPage  int
		wantIDs   []int64
		wantPages int
	}{
		{name: "first page", page: 1, wantPage: 1, wantIDs: []int64{10, 9, 8, 7}, wantPages: 3},
		{name: "last partial page", page: 3, wantPage: 3, wantIDs: []int64{2, 1}, wantPages: 3},
		{name: "clamps page below one", page: 0, wantPage: 1, wantIDs: []int64{10, 9, 8, 7}, wantPages: 3},
		{name: "page beyond last is empty", page: 7, wantPage: 7, wantIDs: []int64{}, wantPages: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Paginate[item](context.Background(), db, q, tc.page, 4)
			if err != nil {
				t.Fatalf("paginate failed: %v", err)
			}
			if got.CurrentPage != tc.wantPage {
				t.Fatalf("expected current page %d, got %d", tc.wantPage, got.CurrentPage)
			}
			if got.TotalPages != tc.wantPages {
				t.Fatalf("expected %d total pages, got %d", tc.wantPages, got.TotalPages)
			}
			if got.TotalItems != 10 {
				t.Fatalf("expected 10 total items, got %d", got.TotalItems)
			}
			if got.Items == nil {
				t.Fatal("expected non-nil items slice")
			}
			if len(got.Items) > 4 {
				t.Fatalf("page holds %d items, more than page size", len(got.Items))
			}
			if len(got.Items) != len(tc.wantIDs) {
				t.Fatalf("expected %d items, got %d", len(tc.wantIDs), len(got.Items))
			}
			for i, id := range tc.wantIDs {
				if got.Items[i].ID != id {
					t.Fatalf("item %d: expected id %d, got %d", i, id, got.Items[i].ID)
				}
			}
		})
	}
}

func TestPaginateWithArgs(t *testing.T) {
	db := dbtest.Open(t)
	db.MustExec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	for i := 1; i <= 5; i++ {
		name := "odd"
		if i%2 == 0 {
			name = "even"
		}
		db.MustExec(`INSERT INTO items (id, name) VALUES (?, ?)`, i, name)
	}

	got, err := Paginate[item](context.Background(), db, Query{
		Select: `SELECT id, name FROM items WHERE name = ? ORDER BY id`,
		Count:  `SELECT COUNT(*) FROM items WHERE name = ?`,
		Args:   []any{"odd"},
	}, 2, 2)
	if err != nil {
		t.Fatalf("paginate failed: %v", err)
	}
	if got.TotalItems != 3 || got.TotalPages != 2 {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if len(got.Items) != 1 || got.Items[0].ID != 5 {
		t.Fatalf("expected only item 5 on page 2, got %+v", got.Items)
	}
}

func TestPaginateRejectsInvalidSize(t *testing.T) {
	db := dbtest.Open(t)
	if _, err := Paginate[item](context.Background(), db, Query{}, 1, 0); err == nil {
		t.Fatal("expected error for zero page size")
	}
}
