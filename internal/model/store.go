package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/drakos74/offset-model/internal/fit"
	"github.com/drakos74/offset-model/internal/storage"
	"github.com/rs/zerolog/log"
)

// Store saves and loads one model per axis on top of a storage backend.
type Store struct {
	persistence storage.Persistence
	now         func() time.Time
}

// NewStore creates a model store over the given persistence.
func NewStore(persistence storage.Persistence) *Store {
	return &Store{
		persistence: persistence,
		now:         time.Now,
	}
}

// WithClock overrides the clock used to stamp saved models.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Save persists the fit result as the model of the axis, replacing any previous one.
func (s *Store) Save(r fit.Result, axis Axis) (Model, error) {
	models, err := s.SaveAll(map[Axis]fit.Result{axis: r})
	if err != nil {
		return Model{}, err
	}
	return models[axis], nil
}

// SaveAll persists the results of every axis, or none of them.
// The previous records are read first; when a save fails, the slots already written
// are put back to their previous record, or removed if they had none.
func (s *Store) SaveAll(results map[Axis]fit.Result) (map[Axis]Model, error) {
	axes := make([]Axis, 0, len(results))
	for axis := range results {
		if _, ok := Axes[string(axis)]; !ok {
			return nil, fmt.Errorf("unknown axis '%s'", axis)
		}
		axes = append(axes, axis)
	}
	sort.Slice(axes, func(i, j int) bool {
		return axes[i] < axes[j]
	})

	now := s.now()
	models := make(map[Axis]Model, len(axes))
	for _, axis := range axes {
		m := New(axis, results[axis], now)
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("refusing to save %s: %w", axis, err)
		}
		models[axis] = m
	}

	previous := make(map[Axis]json.RawMessage, len(axes))
	for _, axis := range axes {
		var raw json.RawMessage
		err := s.persistence.Load(axis.Key(), &raw)
		switch {
		case errors.Is(err, storage.NotFoundErr):
		case errors.Is(err, storage.CouldNotLoadErr):
			log.Warn().Err(err).Str("axis", string(axis)).Msg("previous record is unreadable, it will not be restored")
		case err != nil:
			return nil, fmt.Errorf("could not read previous %s: %w", axis, err)
		default:
			previous[axis] = raw
		}
	}

	written := make([]Axis, 0, len(axes))
	for _, axis := range axes {
		if err := s.persistence.Store(axis.Key(), models[axis]); err != nil {
			s.rollback(written, previous)
			return nil, fmt.Errorf("save %s: %w", axis, err)
		}
		written = append(written, axis)
		log.Debug().
			Str("axis", string(axis)).
			Str("key", axis.Key().Path()).
			Str("id", models[axis].ID).
			Int("degree", models[axis].Degree).
			Msg("saved model")
	}
	return models, nil
}

func (s *Store) rollback(written []Axis, previous map[Axis]json.RawMessage) {
	for i := len(written) - 1; i >= 0; i-- {
		axis := written[i]
		var err error
		if raw, ok := previous[axis]; ok {
			err = s.persistence.Store(axis.Key(), raw)
		} else {
			err = s.persistence.Remove(axis.Key())
		}
		if err != nil {
			log.Error().Err(err).Str("axis", string(axis)).Msg("could not roll back model")
			continue
		}
		log.Warn().Str("axis", string(axis)).Msg("rolled back model")
	}
}

// Load reads and validates the model of the axis.
func (s *Store) Load(axis Axis) (Model, error) {
	var m Model
	err := s.persistence.Load(axis.Key(), &m)
	switch {
	case errors.Is(err, storage.NotFoundErr):
		return Model{}, &NotFoundError{Axis: axis}
	case errors.Is(err, storage.CouldNotLoadErr):
		return Model{}, &CorruptError{Axis: axis, Reason: "undecodable record", Err: err}
	case err != nil:
		return Model{}, fmt.Errorf("could not load %s: %w", axis, err)
	}
	if err := m.Validate(); err != nil {
		return Model{}, &CorruptError{Axis: axis, Reason: "invalid record", Err: err}
	}
	if m.Axis != axis {
		return Model{}, &CorruptError{Axis: axis, Reason: fmt.Sprintf("record belongs to %s", m.Axis)}
	}
	return m, nil
}

// Predict loads the model of the axis and evaluates it at q.
func (s *Store) Predict(axis Axis, q float64) (float64, error) {
	m, err := s.Load(axis)
	if err != nil {
		return 0, err
	}
	return m.Evaluate(q), nil
}
