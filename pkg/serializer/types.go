package serializer

import (
	"context"
	"io"
)

// Serializer writes a value in some output format.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}

// TableRenderer is implemented by values with a custom human readable form.
// The table format uses it instead of the generic FIELD/VALUE listing.
type TableRenderer interface {
	RenderTable(w io.Writer) error
}
