package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
	"github.com/traincamp/bootcamp-directory/internal/core/ports"
)

func newBootcampService(bootcamps *memBootcamps, courses *memCourses, reviews *memReviews, photos *stubPhotos) *BootcampService {
	return NewBootcampService(bootcamps, courses, reviews, &stubGeocoder{}, photos, 1_000_000, zerolog.Nop())
}

func validInput(name string) ports.CreateBootcampInput {
	return ports.CreateBootcampInput{
		Name:        name,
		Description: "teaches things",
		Address:     "123 Main St, Boston MA",
		Careers:     []string{"Web Development"},
	}
}

func TestBootcampCreate_SlugAndDefaults(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Dev Works Bootcamp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if b.Slug != "dev-works-bootcamp" {
		t.Fatalf("slug = %q", b.Slug)
	}
	if b.Photo != domain.DefaultPhoto {
		t.Fatalf("photo = %q, want default", b.Photo)
	}
	if b.Location.Type != "Point" || len(b.Location.Coordinates) != 2 {
		t.Fatalf("location not geocoded: %+v", b.Location)
	}
	if b.UserID != owner.ID {
		t.Fatalf("owner not recorded")
	}
}

func TestBootcampCreate_SecondDeniedForNonAdmin(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	if _, err := svc.Create(context.Background(), owner, validInput("First Camp")); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), owner, validInput("Second Camp"))
	if !errors.Is(err, domain.ErrBootcampLimit) {
		t.Fatalf("expected ErrBootcampLimit, got %v", err)
	}
}

func TestBootcampCreate_AdminMayOwnSeveral(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})
	admin := &domain.User{ID: primitive.NewObjectID(), Role: domain.RoleAdmin}

	if _, err := svc.Create(context.Background(), admin, validInput("First Camp")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, validInput("Second Camp")); err != nil {
		t.Fatalf("second create for admin: %v", err)
	}
}

func TestBootcampCreate_InvalidCareer(t *testing.T) {
	svc := newBootcampService(newMemBootcamps(), newMemCourses(), newMemReviews(), &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	in := validInput("Camp")
	in.Careers = []string{"Underwater Basket Weaving"}

	_, err := svc.Create(context.Background(), owner, in)
	if !errors.Is(err, domain.ErrInvalidCareer) {
		t.Fatalf("expected ErrInvalidCareer, got %v", err)
	}
}

func TestBootcampUpdate_NonOwnerDenied(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}
	stranger := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newName := "Hijacked"
	_, err = svc.Update(context.Background(), stranger, b.ID.Hex(), ports.UpdateBootcampInput{Name: &newName})
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	stored, _ := svc.Get(context.Background(), b.ID.Hex())
	if stored.Name != "Camp" {
		t.Fatalf("name changed to %q despite denial", stored.Name)
	}
}

func TestBootcampDelete_CascadesToChildren(t *testing.T) {
	bootcamps := newMemBootcamps()
	courses := newMemCourses()
	reviews := newMemReviews()
	svc := newBootcampService(bootcamps, courses, reviews, &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = courses.Create(context.Background(), &domain.Course{BootcampID: b.ID, UserID: owner.ID, Tuition: 100})
	_ = reviews.Create(context.Background(), &domain.Review{BootcampID: b.ID, UserID: owner.ID, Rating: 5})

	if err := svc.Delete(context.Background(), owner, b.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(courses.items) != 0 {
		t.Fatalf("courses survived cascade")
	}
	if len(reviews.items) != 0 {
		t.Fatalf("reviews survived cascade")
	}
	if _, err := svc.Get(context.Background(), b.ID.Hex()); !errors.Is(err, domain.ErrBootcampNotFound) {
		t.Fatalf("bootcamp still present after delete: %v", err)
	}
}

func TestBootcampWithinRadius_ConvertsMilesToRadians(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})

	if _, err := svc.WithinRadius(context.Background(), "02108", 10); err != nil {
		t.Fatalf("within radius: %v", err)
	}

	want := 10 / 3963.2
	if got := bootcamps.lastRadius; got != want {
		t.Fatalf("radius = %v, want %v", got, want)
	}
}

func TestBootcampUploadPhoto_RejectsNonImage(t *testing.T) {
	bootcamps := newMemBootcamps()
	photos := &stubPhotos{}
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), photos)
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UploadPhoto(context.Background(), owner, b.ID.Hex(), ports.PhotoUpload{
		Reader:      strings.NewReader("plain text"),
		Size:        10,
		ContentType: "text/plain",
		Filename:    "notes.txt",
	})
	if !errors.Is(err, domain.ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto, got %v", err)
	}
	if len(photos.names) != 0 {
		t.Fatalf("photo stored despite rejection")
	}
}

func TestBootcampUploadPhoto_RejectsOversized(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), &stubPhotos{})
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.UploadPhoto(context.Background(), owner, b.ID.Hex(), ports.PhotoUpload{
		Reader:      strings.NewReader("jpegbytes"),
		Size:        2_000_000,
		ContentType: "image/jpeg",
		Filename:    "big.jpg",
	})
	if !errors.Is(err, domain.ErrInvalidPhoto) {
		t.Fatalf("expected ErrInvalidPhoto, got %v", err)
	}
}

func TestBootcampUploadPhoto_StoresAndRecordsName(t *testing.T) {
	bootcamps := newMemBootcamps()
	photos := &stubPhotos{}
	svc := newBootcampService(bootcamps, newMemCourses(), newMemReviews(), photos)
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	b, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name, err := svc.UploadPhoto(context.Background(), owner, b.ID.Hex(), ports.PhotoUpload{
		Reader:      strings.NewReader("jpegbytes"),
		Size:        9,
		ContentType: "image/jpeg",
		Filename:    "camp.jpg",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if !strings.HasPrefix(name, "photo_"+b.ID.Hex()+"_") || !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("unexpected object name %q", name)
	}
	if len(photos.names) != 1 || photos.names[0] != name {
		t.Fatalf("photo not stored under %q", name)
	}

	stored, _ := svc.Get(context.Background(), b.ID.Hex())
	if stored.Photo != name {
		t.Fatalf("photo field = %q, want %q", stored.Photo, name)
	}
}

func TestBootcampCreate_GeocoderFailurePropagates(t *testing.T) {
	bootcamps := newMemBootcamps()
	svc := NewBootcampService(
		bootcamps, newMemCourses(), newMemReviews(),
		&stubGeocoder{err: domain.ErrDependency}, &stubPhotos{}, 1_000_000, zerolog.Nop(),
	)
	owner := &domain.User{ID: primitive.NewObjectID(), Role: domain.RolePublisher}

	_, err := svc.Create(context.Background(), owner, validInput("Camp"))
	if !errors.Is(err, domain.ErrDependency) {
		t.Fatalf("expected ErrDependency, got %v", err)
	}
	if len(bootcamps.items) != 0 {
		t.Fatalf("bootcamp stored despite geocode failure")
	}
}
