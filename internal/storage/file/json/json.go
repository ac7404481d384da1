package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/drakos74/offset-model/internal/storage"
	"github.com/drakos74/offset-model/internal/storage/file"
	"github.com/rs/zerolog/log"
)

const ext = ".json"

// Save saves the given json struct into the given path with the provided filename.
// The file is replaced atomically, see file.WriteAtomic.
func Save(filePath string, fileName string, value interface{}) error {
	// check if filepath exists
	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode '%s': %w", fileName, err)
	}

	return file.WriteAtomic(filepath.Join(filePath, fileName), b)
}

// Load loads the payload from the given filePath and fileName.
func Load(filePath string, fileName string, value interface{}) error {

	p := filepath.Join(filePath, fileName)

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not read file '%s': %w", p, storage.NotFoundErr)
	}
	if err != nil {
		return fmt.Errorf("could not read file '%s': %w", p, err)
	}

	err = json.Unmarshal(data, value)
	if err != nil {
		return fmt.Errorf("could not unmarshal '%s': %v: %w", p, err, storage.CouldNotLoadErr)
	}

	return nil
}

// BlobStorage keeps one json file per key in a directory.
type BlobStorage struct {
	path  string
	debug bool
}

// NewJsonBlob creates a blob storage rooted at path.
func NewJsonBlob(path string, debug bool) *BlobStorage {
	if path == "" {
		path = storage.DefaultDir
	}
	return &BlobStorage{
		path:  path,
		debug: debug,
	}
}

// File returns the file a key is stored in.
func (s BlobStorage) File(k storage.Key) string {
	return filepath.Join(s.path, k.Path()+ext)
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	err := Save(s.path, k.Path()+ext, value)
	if err == nil && s.debug {
		log.Debug().Str("path", s.path).Str("file", k.Path()+ext).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(s.path, k.Path()+ext, value)
}

// Remove deletes the file of the key, a missing file is not an error.
func (s BlobStorage) Remove(k storage.Key) error {
	err := os.Remove(s.File(k))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("could not remove '%s': %w", s.File(k), err)
	}
	return nil
}
