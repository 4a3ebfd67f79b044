package ports

import (
	"context"

	"frontier/internal/domain"
)

// ResultStore persists immutable action result records. Records are
// write-once; a second write for the same session id fails.
type ResultStore interface {
	Write(ctx context.Context, record domain.ActionResultRecord) error
}
