package ports

import (
	"context"
	"io"
	"time"

	"github.com/traincamp/bootcamp-directory/internal/core/domain"
)

// Geocoder resolves a free-form address or zipcode to a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*domain.Location, error)
}

// Mailer delivers a single email synchronously.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// MailJob is one outbound email handed to the dispatcher.
type MailJob struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailQueue accepts mail jobs for asynchronous delivery. Enqueue fails fast
// when the queue is saturated instead of blocking the request.
type MailQueue interface {
	Enqueue(job MailJob) error
}

// PhotoStore persists uploaded bootcamp photos under an object name.
type PhotoStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
}

// TokenDenylist revokes issued tokens before their expiry (logout).
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
