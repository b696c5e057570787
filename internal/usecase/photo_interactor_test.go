package usecase

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/database/dbtest"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

func TestPhotoUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")
	sea := dbtest.InsertTag(t, f.db, "sea")

	in := upload("jpeg-bytes")
	in.TagIDs = []int64{sea}
	photo, err := f.photos.Upload(ctx, alice, in)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if photo.ID <= 0 || photo.UserID != alice.UserID {
		t.Fatalf("unexpected photo %+v", photo)
	}
	if !strings.HasPrefix(photo.Source, "photos/") || !strings.HasSuffix(photo.Source, ".jpg") {
		t.Errorf("unexpected object key %q", photo.Source)
	}

	rc, err := f.photos.Source(ctx, photo.ID)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "jpeg-bytes" {
		t.Errorf("expected stored file content, got %q", data)
	}
	if n := dbtest.Count(t, f.db, "photo_tags", "photo_id = ?", photo.ID); n != 1 {
		t.Errorf("expected tag link, got %d", n)
	}
}

func TestPhotoUploadValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice")

	big := upload("x")
	big.Size = MaxPhotoSize + 1

	tests := []struct {
		name   string
		viewer domain.Viewer
		input  func() UploadInput
		want   error
	}{
		{"anonymous", domain.Viewer{}, func() UploadInput { return upload("x") }, domain.ErrUnauthorized},
		{"short title", alice, func() UploadInput { in := upload("x"); in.Title = "ab"; return in }, domain.ErrValidation},
		{"markup only title", alice, func() UploadInput { in := upload("x"); in.Title = "<b></b>"; return in }, domain.ErrValidation},
		{"too big", alice, func() UploadInput { return big }, domain.ErrValidation},
		{"no file", alice, func() UploadInput { in := upload(""); in.File = nil; return in }, domain.ErrValidation},
		{"wrong type", alice, func() UploadInput { in := upload("x"); in.ContentType = "text/plain"; return in }, domain.ErrValidation},
		{"unknown tag", alice, func() UploadInput { in := upload("x"); in.TagIDs = []int64{99}; return in }, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.photos.Upload(ctx, tt.viewer, tt.input()); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if len(f.files.files) != 0 {
		t.Errorf("rejected uploads must not store files, got %d", len(f.files.files))
	}
}

func TestPhotoEditAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	stranger := f.user(t, "stranger")
	admin := f.admin(t, "root")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "original", base)
	tag := dbtest.InsertTag(t, f.db, "night")

	tests := []struct {
		name   string
		viewer domain.Viewer
		want   error
	}{
		{"anonymous", domain.Viewer{}, domain.ErrUnauthorized},
		{"stranger", stranger, domain.ErrForbidden},
		{"owner", owner, nil},
		{"admin", admin, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			photo, err := f.photos.Edit(ctx, tt.viewer, photoID, EditInput{Title: "edited by " + tt.name, TagIDs: []int64{tag}})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == nil {
				if photo.Title != "edited by "+tt.name || photo.Source != "photos/original.jpg" {
					t.Errorf("unexpected photo after edit: %+v", photo)
				}
				if !reflect.DeepEqual(photo.TagIDs, []int64{tag}) {
					t.Errorf("expected tags %v, got %v", []int64{tag}, photo.TagIDs)
				}
			}
		})
	}

	if _, err := f.photos.Edit(ctx, owner, 404, EditInput{Title: "missing"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoDeleteEnqueuesCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	stranger := f.user(t, "stranger")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)
	dbtest.InsertRating(t, f.db, photoID, stranger.UserID, 3)
	dbtest.InsertComment(t, f.db, photoID, stranger.UserID, "hi", base)

	if err := f.photos.Delete(ctx, stranger, photoID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if len(f.publisher.published) != 0 {
		t.Fatal("nothing must be published on a rejected delete")
	}

	if err := f.photos.Delete(ctx, owner, photoID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := dbtest.Count(t, f.db, "photos", "id = ?", photoID); n != 0 {
		t.Errorf("expected photo removed, got %d", n)
	}
	if n := dbtest.Count(t, f.db, "ratings", ""); n != 0 {
		t.Errorf("expected ratings removed, got %d", n)
	}

	if len(f.publisher.published) != 1 {
		t.Fatalf("expected one cleanup message, got %d", len(f.publisher.published))
	}
	msg := f.publisher.published[0]
	if !reflect.DeepEqual(msg.PhotoIDs, []int64{photoID}) || !reflect.DeepEqual(msg.Sources, []string{"photos/p.jpg"}) {
		t.Errorf("unexpected cleanup payload %+v", msg)
	}
}

func TestPhotoDeleteSurvivesPublishFailure(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	owner := f.user(t, "owner")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)

	if err := f.photos.Delete(context.Background(), owner, photoID); err != nil {
		t.Fatalf("expected delete to succeed despite publish failure, got %v", err)
	}
}

func TestPhotoRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	voter := f.user(t, "voter")
	other := f.user(t, "other")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)

	if _, err := f.photos.Rate(ctx, domain.Viewer{}, photoID, 4); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	for _, v := range []int{0, 6} {
		if _, err := f.photos.Rate(ctx, voter, photoID, v); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("value %d: expected ErrValidation, got %v", v, err)
		}
	}
	if _, err := f.photos.Rate(ctx, voter, 404, 4); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	summary, err := f.photos.Rate(ctx, voter, photoID, 5)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if !summary.UserHaveRated || summary.AverageRating == nil || *summary.AverageRating != 5 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	if _, err := f.photos.Rate(ctx, voter, photoID, 1); !errors.Is(err, domain.ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}

	if _, err := f.photos.Rate(ctx, other, photoID, 4); err != nil {
		t.Fatalf("second voter: %v", err)
	}
	dbtest.InsertRating(t, f.db, photoID, owner.UserID, 4)

	view, err := f.photos.View(ctx, domain.Viewer{}, photoID, 1)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	// (5+4+4)/3 = 4.333...
	if view.AverageRating == nil || *view.AverageRating != 4.3 {
		t.Errorf("expected rounded average 4.3, got %v", view.AverageRating)
	}
	if view.UserHaveRated {
		t.Error("anonymous viewer cannot have rated")
	}
}

func TestPhotoView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)
	tag := dbtest.InsertTag(t, f.db, "sea")
	dbtest.LinkTag(t, f.db, photoID, tag)
	for _, text := range []string{"a", "b", "c", "d"} {
		dbtest.InsertComment(t, f.db, photoID, owner.UserID, text, base)
	}

	view, err := f.photos.View(ctx, owner, photoID, 2)
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if view.Photo.ID != photoID || view.Author == nil || view.Author.Login != "owner" {
		t.Fatalf("unexpected view %+v", view)
	}
	if len(view.Tags) != 1 || view.Tags[0].Name != "sea" {
		t.Errorf("unexpected tags %+v", view.Tags)
	}
	if view.AverageRating != nil || view.UserHaveRated {
		t.Errorf("expected no rating data, got %+v", view)
	}
	if view.Comments.CurrentPage != 2 || len(view.Comments.Items) != 1 || view.Comments.TotalPages != 2 {
		t.Errorf("unexpected comment page %+v", view.Comments)
	}

	if _, err := f.photos.View(ctx, owner, 404, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoListByTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)
	tag := dbtest.InsertTag(t, f.db, "sea")
	dbtest.LinkTag(t, f.db, photoID, tag)

	got, err := f.photos.ListByTag(ctx, tag, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got.Tag.Name != "sea" || got.Photos.TotalItems != 1 {
		t.Errorf("unexpected result %+v", got)
	}
	if _, err := f.photos.ListByTag(ctx, 404, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotoComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.user(t, "owner")
	author := f.user(t, "author")
	stranger := f.user(t, "stranger")
	admin := f.admin(t, "root")
	photoID := dbtest.InsertPhoto(t, f.db, owner.UserID, "p", base)

	if _, err := f.photos.Comment(ctx, author, photoID, "  <i></i> "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank comment, got %v", err)
	}

	comment, err := f.photos.Comment(ctx, author, photoID, "<b>great</b> shot")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if comment.Text != "great shot" {
		t.Errorf("expected sanitized text, got %q", comment.Text)
	}

	if err := f.photos.DeleteComment(ctx, stranger, comment.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.photos.DeleteComment(ctx, author, comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	second, err := f.photos.Comment(ctx, author, photoID, "again")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if err := f.photos.DeleteComment(ctx, admin, second.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := f.photos.DeleteComment(ctx, admin, second.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
