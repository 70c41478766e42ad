package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorage(t *testing.T) {
	tmpDir := t.TempDir()
	storage, err := NewLocalStorage(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("SaveFile", func(t *testing.T) {
		content := []byte("jpeg bytes")

		filename, err := storage.SaveFile(bytes.NewReader(content), FileInfo{
			Filename:    "Portrait.JPEG",
			ContentType: "image/jpeg",
			Size:        int64(len(content)),
		})
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}

		if filepath.Ext(filename) != ".jpeg" {
			t.Errorf("Expected .jpeg extension, got %s", filepath.Ext(filename))
		}

		saved, err := os.ReadFile(filepath.Join(tmpDir, filename))
		if err != nil {
			t.Fatalf("File was not saved: %v", err)
		}
		if !bytes.Equal(saved, content) {
			t.Errorf("Saved content mismatch")
		}
	})

	t.Run("SaveFileDefaultExtension", func(t *testing.T) {
		filename, err := storage.SaveFile(bytes.NewReader([]byte("x")), FileInfo{Filename: "upload"})
		if err != nil {
			t.Fatalf("Failed to save file: %v", err)
		}
		if filepath.Ext(filename) != ".jpg" {
			t.Errorf("Expected .jpg extension, got %s", filepath.Ext(filename))
		}
	})

	t.Run("OpenFile", func(t *testing.T) {
		content := []byte("stored image")
		testFile := "test-file.jpg"
		if err := os.WriteFile(filepath.Join(tmpDir, testFile), content, 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		file, err := storage.OpenFile(testFile)
		if err != nil {
			t.Fatalf("Failed to open file: %v", err)
		}
		defer file.Close()

		got, err := io.ReadAll(file)
		if err != nil {
			t.Fatalf("Failed to read file: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("File content mismatch")
		}
	})

	t.Run("OpenMissingFile", func(t *testing.T) {
		_, err := storage.OpenFile("absent.jpg")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected not-exist error, got %v", err)
		}
	})

	t.Run("DeleteFile", func(t *testing.T) {
		testFile := "delete-test.jpg"
		fullPath := filepath.Join(tmpDir, testFile)
		if err := os.WriteFile(fullPath, []byte("test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		if err := storage.DeleteFile(testFile); err != nil {
			t.Fatalf("Failed to delete file: %v", err)
		}

		if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
			t.Errorf("File was not deleted")
		}
	})

	t.Run("PathTraversalPrevention", func(t *testing.T) {
		for _, name := range []string{"../../../etc/passwd", "sub/dir.jpg", ".", ""} {
			if _, err := storage.OpenFile(name); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("OpenFile(%q): expected ErrInvalidPath, got %v", name, err)
			}
		}

		if err := storage.DeleteFile("../../../etc/passwd"); !errors.Is(err, ErrInvalidPath) {
			t.Errorf("Path traversal was not prevented in delete")
		}
	})
}
