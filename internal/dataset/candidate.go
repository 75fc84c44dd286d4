// Package dataset loads, cleans and filters candidate evaluation records.
package dataset

import "database/sql"

// Column names of the input file.
const (
	ColAge             = "Age"
	ColOLQScore        = "OLQ_Score"
	ColPsychTest       = "Psych_Test"
	ColGTOResult       = "GTO_Result"
	ColPIMarks         = "PI_Marks"
	ColConferenceMarks = "Conference_Marks"
	ColSSBScore        = "SSB_Score"
	ColRankSecured     = "Rank_Secured"
	ColRegion          = "Region"
	ColGender          = "Gender"
	ColRecommended     = "Recommended"
)

const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// Columns lists the columns every input file must carry.
var Columns = []string{
	ColAge, ColOLQScore, ColPsychTest, ColGTOResult, ColPIMarks,
	ColConferenceMarks, ColSSBScore, ColRankSecured,
	ColRegion, ColGender, ColRecommended,
}

// FeatureColumns is the ordered feature set fed to the classifier.
var FeatureColumns = []string{ColAge, ColOLQScore, ColPsychTest, ColGTOResult, ColPIMarks}

// Candidate is one cleaned row. Required fields are always present;
// RankSecured and ConferenceMarks may be missing.
type Candidate struct {
	Age       float64
	OLQScore  float64
	PsychTest float64
	GTOResult float64
	PIMarks   float64
	SSBScore  float64

	ConferenceMarks sql.NullFloat64
	RankSecured     sql.NullFloat64

	Region      string
	Gender      string
	Recommended string

	// cells of columns outside Columns, keyed by header name
	extra map[string]string
}

// Features returns the row in FeatureColumns order.
func (c Candidate) Features() []float64 {
	return []float64{c.Age, c.OLQScore, c.PsychTest, c.GTOResult, c.PIMarks}
}

// Trainable reports whether the label is exactly "Yes" or "No".
func (c Candidate) Trainable() bool {
	return c.Recommended == LabelYes || c.Recommended == LabelNo
}

// Target maps "Yes" to 1 and everything else to 0.
func (c Candidate) Target() int {
	if c.Recommended == LabelYes {
		return 1
	}
	return 0
}

// Table is an ordered set of candidates plus the source header.
type Table struct {
	Header []string
	Rows   []Candidate

	// Dropped counts source rows removed during cleaning.
	Dropped int
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Regions returns distinct Region values in first-seen order.
func (t *Table) Regions() []string {
	return t.distinct(func(c Candidate) string { return c.Region })
}

// Genders returns distinct Gender values in first-seen order.
func (t *Table) Genders() []string {
	return t.distinct(func(c Candidate) string { return c.Gender })
}

// Trainable returns the rows whose label is "Yes" or "No".
func (t *Table) Trainable() *Table {
	out := &Table{Header: t.Header}
	for _, c := range t.Rows {
		if c.Trainable() {
			out.Rows = append(out.Rows, c)
		}
	}
	return out
}

// XY returns the feature matrix and binary target of the table.
func (t *Table) XY() ([][]float64, []int) {
	x := make([][]float64, 0, len(t.Rows))
	y := make([]int, 0, len(t.Rows))
	for _, c := range t.Rows {
		x = append(x, c.Features())
		y = append(y, c.Target())
	}
	return x, y
}

func (t *Table) distinct(key func(Candidate) string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, c := range t.Rows {
		k := key(c)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
