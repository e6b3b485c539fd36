package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalStorageSave(t *testing.T) {
	dir := t.TempDir()
	store := &LocalStorage{BaseDir: dir}

	url, err := store.Save([]byte("contenido"), "submissions", "tarea.pdf", "application/pdf")
	assert.NoError(t, err)
	assert.Equal(t, "/uploads/submissions/tarea.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "submissions", "tarea.pdf"))
	assert.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestSubmissionFileName(t *testing.T) {
	name := SubmissionFileName(7, 12, ".pdf")

	assert.True(t, strings.HasPrefix(name, "submission_7_12_"), "name: %s", name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), "name: %s", name)

	// Dos llamadas nunca chocan, aun en el mismo segundo
	other := SubmissionFileName(7, 12, ".pdf")
	assert.NotEqual(t, name, other)
}

func TestStorageFromEnv(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("UPLOADS_DIR", "archivos")
	local, ok := StorageFromEnv().(*LocalStorage)
	assert.True(t, ok)
	assert.Equal(t, "archivos", local.BaseDir)

	t.Setenv("STORAGE_DRIVER", "supabase")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "key")
	remote, ok := StorageFromEnv().(*SupabaseStorage)
	assert.True(t, ok)
	assert.Equal(t, "https://proj.supabase.co", remote.URL)
	assert.Equal(t, "uploads", remote.Bucket)
}
