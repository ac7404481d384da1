package model

import (
	"fmt"
	"sort"

	"github.com/drakos74/offset-model/internal/storage"
)

// Axis identifies a pointing axis by the offset it corrects.
type Axis string

const (
	// NoAxis is an undefined axis
	NoAxis Axis = ""
	// Azimuth maps the commanded azimuth to offset_az
	Azimuth Axis = "offset_az"
	// Elevation maps the commanded elevation to offset_el
	Elevation Axis = "offset_el"
)

// Axes contains the known axes keyed by their target column.
var Axes = map[string]Axis{
	"offset_az": Azimuth,
	"offset_el": Elevation,
}

// KnownAxes returns the target names of all axes, sorted.
func KnownAxes() []string {
	aa := make([]string, 0, len(Axes))
	for a := range Axes {
		aa = append(aa, a)
	}
	sort.Strings(aa)
	return aa
}

// ParseAxis resolves an axis from its target or input column name.
func ParseAxis(s string) (Axis, error) {
	if a, ok := Axes[s]; ok {
		return a, nil
	}
	for _, a := range Axes {
		if a.Input() == s {
			return a, nil
		}
	}
	return NoAxis, fmt.Errorf("unknown axis '%s'", s)
}

// Input is the column holding the commanded angle.
func (a Axis) Input() string {
	switch a {
	case Azimuth:
		return "azimuth"
	case Elevation:
		return "elevation"
	}
	return ""
}

// Target is the column holding the observed offset.
func (a Axis) Target() string {
	return string(a)
}

// Key is the storage slot of the axis model.
func (a Axis) Key() storage.Key {
	return storage.Key{
		Prefix: "model",
		Label:  string(a),
	}
}

// Describe returns the model relation e.g. offset_az = f(azimuth)
func (a Axis) Describe() string {
	return fmt.Sprintf("%s = f(%s)", a.Target(), a.Input())
}

// Label is the human readable axis name e.g. Offset Az
func (a Axis) Label() string {
	switch a {
	case Azimuth:
		return "Offset Az"
	case Elevation:
		return "Offset El"
	}
	return string(a)
}
