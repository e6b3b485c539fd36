package services

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// Storage abstrae dónde quedan los archivos subidos (entregas de tareas,
// comprobantes de pago). Devuelve la URL pública del archivo guardado.
type Storage interface {
	Save(data []byte, dir, filename, contentType string) (string, error)
}

// StorageFromEnv elige el backend según STORAGE_DRIVER: "supabase" usa
// Supabase Storage; cualquier otro valor guarda en disco local como la
// versión original.
func StorageFromEnv() Storage {
	if os.Getenv("STORAGE_DRIVER") == "supabase" {
		return &SupabaseStorage{
			URL:    os.Getenv("SUPABASE_URL"),
			Key:    os.Getenv("SUPABASE_KEY"),
			Bucket: "uploads",
		}
	}
	baseDir := os.Getenv("UPLOADS_DIR")
	if baseDir == "" {
		baseDir = "uploads"
	}
	return &LocalStorage{BaseDir: baseDir}
}

// LocalStorage escribe bajo BaseDir y expone la ruta como /uploads/...
type LocalStorage struct {
	BaseDir string
}

func (s *LocalStorage) Save(data []byte, dir, filename, contentType string) (string, error) {
	targetDir := filepath.Join(s.BaseDir, dir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(targetDir, filename), data, 0o644); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", dir, filename), nil
}

// SupabaseStorage sube al bucket y devuelve la URL pública.
type SupabaseStorage struct {
	URL    string
	Key    string
	Bucket string
}

func (s *SupabaseStorage) Save(data []byte, dir, filename, contentType string) (string, error) {
	client := storage.NewClient(s.URL+"/storage/v1", s.Key, nil)

	objectPath := fmt.Sprintf("%s/%s", dir, filename)
	options := storage.FileOptions{ContentType: &contentType}

	if _, err := client.UploadFile(s.Bucket, objectPath, bytes.NewBuffer(data), options); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.URL, s.Bucket, objectPath), nil
}

// SubmissionFileName genera un nombre único y rastreable para la entrega:
// submission_<alumno>_<tarea>_<fecha>_<uuid corto><ext>
func SubmissionFileName(studentID, assignmentID uint, ext string) string {
	return fmt.Sprintf(
		"submission_%d_%d_%s_%s%s",
		studentID,
		assignmentID,
		time.Now().Format("20060102150405"),
		uuid.New().String()[:8],
		ext,
	)
}
