package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded files and returns a reference the client can
// resolve (a local /uploads path or an object URL).
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// ObjectName derives a collision-free stored name from an uploaded filename,
// keeping only its extension.
func ObjectName(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}
