package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/drakos74/offset-model/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Degree       int       `json:"degree"`
	Coefficients []float64 `json:"coefficients"`
}

func newStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "models.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestStorage_StoreAndLoad(t *testing.T) {
	s := newStorage(t)
	k := storage.Key{Prefix: "model", Label: "offset_az"}

	var out record
	assert.ErrorIs(t, s.Load(k, &out), storage.NotFoundErr)

	in := record{Degree: 1, Coefficients: []float64{1.0, 0.002}}
	require.NoError(t, s.Store(k, in))
	require.NoError(t, s.Load(k, &out))
	assert.Equal(t, in, out)

	// overwrite
	in = record{Degree: 0, Coefficients: []float64{0.1 + 0.2}}
	require.NoError(t, s.Store(k, in))
	require.NoError(t, s.Load(k, &out))
	assert.Equal(t, in, out)
}

func TestStorage_Corrupt(t *testing.T) {
	s := newStorage(t)
	k := storage.Key{Prefix: "model", Label: "offset_el"}

	require.NoError(t, s.Put(k, []byte(`{"degree": 2, "coeff`)))

	var out record
	err := s.Load(k, &out)
	assert.ErrorIs(t, err, storage.CouldNotLoadErr)
}

func TestStorage_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.db")
	k := storage.Key{Prefix: "model", Label: "offset_az"}

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Store(k, record{Degree: 2, Coefficients: []float64{1, 2, 3}}))
	require.NoError(t, s.Close())

	s, err = New(path)
	require.NoError(t, err)
	defer s.Close()

	var out record
	require.NoError(t, s.Load(k, &out))
	assert.Equal(t, []float64{1, 2, 3}, out.Coefficients)
}

func TestStorage_Remove(t *testing.T) {
	s := newStorage(t)
	az := storage.Key{Prefix: "model", Label: "offset_az"}
	el := storage.Key{Prefix: "model", Label: "offset_el"}

	require.NoError(t, s.Store(az, record{Degree: 0, Coefficients: []float64{1}}))
	require.NoError(t, s.Store(el, record{Degree: 0, Coefficients: []float64{2}}))
	require.NoError(t, s.Remove(az))
	assert.NoError(t, s.Remove(az))

	var out record
	assert.ErrorIs(t, s.Load(az, &out), storage.NotFoundErr)
	require.NoError(t, s.Load(el, &out))
	assert.Equal(t, []float64{2}, out.Coefficients)
}
