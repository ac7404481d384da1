package json

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drakos74/offset-model/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func TestBlobStorage_StoreAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "models")
	s := NewJsonBlob(dir, true)
	k := storage.Key{Prefix: "model", Label: "offset_az"}

	in := record{Name: "az", Values: []float64{0.1, 1.0 / 3.0, -2e-7}}
	require.NoError(t, s.Store(k, in))

	_, err := os.Stat(filepath.Join(dir, "model_offset_az.json"))
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "model_offset_az.json"), s.File(k))

	var out record
	require.NoError(t, s.Load(k, &out))
	assert.Equal(t, in, out)
}

func TestBlobStorage_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := NewJsonBlob(dir, false)
	k := storage.Key{Prefix: "model", Label: "offset_el"}

	require.NoError(t, s.Store(k, record{Name: "first"}))
	require.NoError(t, s.Store(k, record{Name: "second"}))

	var out record
	require.NoError(t, s.Load(k, &out))
	assert.Equal(t, "second", out.Name)

	// no temp files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestBlobStorage_NotFound(t *testing.T) {
	s := NewJsonBlob(t.TempDir(), false)
	var out record
	err := s.Load(storage.Key{Prefix: "model", Label: "missing"}, &out)
	assert.ErrorIs(t, err, storage.NotFoundErr)
}

func TestBlobStorage_Corrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewJsonBlob(dir, false)
	k := storage.Key{Prefix: "model", Label: "offset_az"}

	require.NoError(t, os.WriteFile(s.File(k), []byte(`{"name": "trunc`), 0644))

	var out record
	err := s.Load(k, &out)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
	assert.NotErrorIs(t, err, storage.NotFoundErr)
}

func TestSave_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
	err := Save(f, "model.json", record{})
	assert.Error(t, err)
}

func TestSave_Unencodable(t *testing.T) {
	dir := t.TempDir()
	err := Save(dir, "model.json", map[string]interface{}{"f": func() {}})
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "model.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestBlobStorage_Remove(t *testing.T) {
	dir := t.TempDir()
	s := NewJsonBlob(dir, false)
	k := storage.Key{Prefix: "model", Label: "offset_az"}

	require.NoError(t, s.Store(k, record{Name: "az"}))
	require.NoError(t, s.Remove(k))
	assert.NoError(t, s.Remove(k))

	var out record
	assert.ErrorIs(t, s.Load(k, &out), storage.NotFoundErr)

	// a directory in the slot cannot be removed
	require.NoError(t, os.MkdirAll(filepath.Join(s.File(k), "inner"), 0755))
	assert.Error(t, s.Remove(k))
}
