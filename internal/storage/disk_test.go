package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	name := ObjectName("avatar.PNG")
	assert.True(t, strings.HasSuffix(name, ".png"))

	ref, err := store.Save(context.Background(), name, "image/png", strings.NewReader("fake-png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+name, ref)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", name))
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))
}

func TestObjectName_Unique(t *testing.T) {
	assert.NotEqual(t, ObjectName("a.jpg"), ObjectName("a.jpg"))
}
