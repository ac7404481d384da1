package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/drakos74/offset-model/infra/config"
	"github.com/drakos74/offset-model/internal/model"
	"github.com/drakos74/offset-model/internal/storage"
	jsonstorage "github.com/drakos74/offset-model/internal/storage/file/json"
	"github.com/drakos74/offset-model/internal/storage/sqlite"
	"github.com/rs/zerolog/log"
)

// openStore creates the model store of the configured backend.
// The returned func releases the backend.
func openStore(c config.Store) (*model.Store, func(), error) {
	dir := c.Dir
	if dir == "" {
		dir = storage.DefaultDir
	}
	switch c.Backend {
	case config.FileBackend:
		log.Debug().Str("dir", dir).Msg("using file store")
		return model.NewStore(jsonstorage.NewJsonBlob(dir, true)), func() {}, nil
	case config.SqliteBackend:
		path := c.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("could not create store dir: %w", err)
		}
		db, err := sqlite.New(path)
		if err != nil {
			return nil, nil, err
		}
		log.Debug().Str("path", path).Msg("using sqlite store")
		return model.NewStore(db), func() {
			if err := db.Close(); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("could not close store")
			}
		}, nil
	case config.VoidBackend:
		return model.NewStore(storage.NewVoidStorage()), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend '%s'", c.Backend)
}

// storeFlags binds the store flags shared by the commands to the config.
type storeFlags struct {
	dir     *string
	backend *string
	db      *string
}

func bindStoreFlags(fs *flag.FlagSet) storeFlags {
	d := config.Default().Store
	return storeFlags{
		dir:     fs.String("store", d.Dir, "directory of the model store"),
		backend: fs.String("backend", d.Backend, "model store backend: file, sqlite or void"),
		db:      fs.String("db", d.Path, "database file of the sqlite backend, relative to -store"),
	}
}

func (s storeFlags) apply(name string, c *config.Config) {
	switch name {
	case "store":
		c.Store.Dir = *s.dir
	case "backend":
		c.Store.Backend = *s.backend
	case "db":
		c.Store.Path = *s.db
	}
}
