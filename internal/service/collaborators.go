package service

import (
	"context"
	"io"

	"eureka/internal/auth"

	"github.com/google/uuid"
)

// BlobStore keeps attachment payloads under the name Save returns.
type BlobStore interface {
	Save(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, template string, data any) error
}

type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.GoogleIdentity, error)
}

type TokenIssuer interface {
	Generate(userID string) (string, error)
}
