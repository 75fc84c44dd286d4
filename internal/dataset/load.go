package dataset

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrMissingColumn   = errors.New("dataset is missing a required column")
)

// missingMarkers are cell values read as "no value", the same spellings
// pandas treats as NA by default.
var missingMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

var titleCaser = cases.Title(language.Und)

// Load reads the CSV at path and returns the cleaned table.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses and cleans CSV data from r.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	for _, col := range Columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}

		c, ok := clean(rec, header, idx)
		if !ok {
			t.Dropped++
			continue
		}
		t.Rows = append(t.Rows, c)
	}
	return t, nil
}

// NormalizeLabel trims s and title-cases it: " yes " becomes "Yes".
func NormalizeLabel(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// ParseRank converts a rank cell; anything unparsable becomes missing.
func ParseRank(s string) sql.NullFloat64 {
	v, ok := parseNumber(s)
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func clean(rec, header []string, idx map[string]int) (Candidate, bool) {
	cell := func(col string) (string, bool) {
		i := idx[col]
		if i >= len(rec) {
			return "", false
		}
		v := strings.TrimSpace(rec[i])
		if _, missing := missingMarkers[v]; missing {
			return "", false
		}
		return v, true
	}

	var c Candidate

	numeric := []struct {
		col string
		dst *float64
	}{
		{ColAge, &c.Age},
		{ColOLQScore, &c.OLQScore},
		{ColPsychTest, &c.PsychTest},
		{ColGTOResult, &c.GTOResult},
		{ColPIMarks, &c.PIMarks},
		{ColSSBScore, &c.SSBScore},
	}
	for _, n := range numeric {
		raw, ok := cell(n.col)
		if !ok {
			return Candidate{}, false
		}
		v, ok := parseNumber(raw)
		if !ok {
			return Candidate{}, false
		}
		*n.dst = v
	}

	var ok bool
	if c.Region, ok = cell(ColRegion); !ok {
		return Candidate{}, false
	}
	if c.Gender, ok = cell(ColGender); !ok {
		return Candidate{}, false
	}
	label, ok := cell(ColRecommended)
	if !ok {
		return Candidate{}, false
	}
	c.Recommended = NormalizeLabel(label)

	rank, _ := cell(ColRankSecured)
	c.RankSecured = ParseRank(rank)
	conf, _ := cell(ColConferenceMarks)
	c.ConferenceMarks = ParseRank(conf)

	for i, h := range header {
		if isKnown(h) || i >= len(rec) {
			continue
		}
		if c.extra == nil {
			c.extra = make(map[string]string)
		}
		c.extra[h] = rec[i]
	}
	return c, true
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if _, missing := missingMarkers[s]; missing {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func isKnown(col string) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}
