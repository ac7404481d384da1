// Package data loads calibration tables of commanded angles and observed offsets.
package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/drakos74/offset-model/internal/fit"
	"github.com/drakos74/offset-model/internal/model"
	"github.com/rs/zerolog/log"
)

const (
	Azimuth   = "azimuth"
	Elevation = "elevation"
	OffsetAz  = "offset_az"
	OffsetEl  = "offset_el"
)

// Required lists the columns every table must provide.
var Required = []string{Azimuth, Elevation, OffsetAz, OffsetEl}

// Format describes the text layout of a table.
type Format struct {
	Delimiter rune
	Comment   rune
}

// TSV is the layout of the calibration exports, tab separated with '#' metadata lines.
var TSV = Format{
	Delimiter: '\t',
	Comment:   '#',
}

// Table holds the numeric columns of the rows that could be parsed.
type Table struct {
	Columns map[string][]float64
	Rows    int
	Dropped int
}

// Samples returns the (angle, offset) pairs of the axis.
func (t *Table) Samples(axis model.Axis) fit.Samples {
	return fit.Samples{
		X: t.Columns[axis.Input()],
		Y: t.Columns[axis.Target()],
	}
}

// Load reads the table at path.
func Load(path string, format Format) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open table: %w", err)
	}
	defer f.Close()

	t, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("could not read table '%s': %w", path, err)
	}
	log.Info().
		Str("path", path).
		Int("rows", t.Rows).
		Int("dropped", t.Dropped).
		Msg("loaded table")
	return t, nil
}

// Read parses a table, rows with a missing or non-numeric required field are dropped.
func Read(r io.Reader, format Format) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = format.Delimiter
	reader.Comment = format.Comment
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	for _, c := range Required {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing required column '%s' in header %v", c, header)
		}
	}

	t := &Table{Columns: make(map[string][]float64, len(Required))}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("could not read line %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		values := make([]float64, len(Required))
		ok := true
		for i, c := range Required {
			j := index[c]
			if j >= len(record) {
				ok = false
				break
			}
			v, err := Coerce(record[j])
			if err != nil {
				ok = false
				log.Debug().Int("line", line).Str("column", c).Str("value", record[j]).Msg("dropping row")
				break
			}
			values[i] = v
		}
		if !ok {
			t.Dropped++
			continue
		}
		for i, c := range Required {
			t.Columns[c] = append(t.Columns[c], values[i])
		}
		t.Rows++
	}

	if t.Dropped > 0 {
		log.Warn().Int("dropped", t.Dropped).Int("kept", t.Rows).Msg("dropped rows with non-numeric values")
	}
	return t, nil
}

// Coerce converts a cell into a finite float, a decimal comma is accepted.
func Coerce(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value '%s'", s)
	}
	return v, nil
}

func blank(record []string) bool {
	for _, r := range record {
		if strings.TrimSpace(r) != "" {
			return false
		}
	}
	return true
}
