package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewPhotoStorage(root, 1)
	require.NoError(t, err)

	userID := uuid.New()
	rel, size, err := s.Save(context.Background(), userID, "Avatar.PNG", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)

	assert.Equal(t, int64(len("png-bytes")), size)
	assert.True(t, strings.HasPrefix(rel, userID.String()+"/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))
	assert.Equal(t, PublicPrefix+rel, s.URL(rel))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestPhotoStorage_TooLarge(t *testing.T) {
	s, err := NewPhotoStorage(t.TempDir(), 1)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte{0xff}, 1024*1024+1)
	_, _, err = s.Save(context.Background(), uuid.New(), "big.jpg", bytes.NewReader(payload))

	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestPhotoStorage_DeleteOutsideRoot(t *testing.T) {
	s, err := NewPhotoStorage(t.TempDir(), 1)
	require.NoError(t, err)

	assert.Error(t, s.Delete(context.Background(), "../../etc/passwd"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "photo", sanitizeFilename(""))
	assert.Equal(t, "logo.svg", sanitizeFilename("logo.svg"))
}
