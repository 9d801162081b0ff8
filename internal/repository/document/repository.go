package document

import "context"

// Document is one read snapshot of the shared orders document. Token is the
// concurrency token identifying the exact state Content was read from; a
// write carries it back so the store can reject a stale update. An empty
// Token means the document does not exist yet.
type Document struct {
	Content []byte
	Token   string
}

// Repository is the remote store holding the shared orders document.
type Repository interface {
	// Fetch returns the current document. A missing document is returned as
	// an empty Document, not an error.
	Fetch(ctx context.Context) (Document, error)
	// Write replaces the document with Content, conditioned on Token. A
	// conflicting intervening write surfaces as domain.ErrConflict.
	Write(ctx context.Context, doc Document) error
}
