package dataset

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Save writes the table to path, replacing whatever was there.
func Save(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cleaned dataset: %w", err)
	}
	if err := Write(f, t); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close cleaned dataset: %w", err)
	}
	return nil
}

// Write encodes the table as CSV using its original header order.
func Write(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write cleaned dataset: %w", err)
	}

	row := make([]string, len(t.Header))
	for _, c := range t.Rows {
		for i, h := range t.Header {
			row[i] = c.cell(h)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write cleaned dataset: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write cleaned dataset: %w", err)
	}
	return nil
}

func (c Candidate) cell(col string) string {
	switch col {
	case ColAge:
		return formatFloat(c.Age)
	case ColOLQScore:
		return formatFloat(c.OLQScore)
	case ColPsychTest:
		return formatFloat(c.PsychTest)
	case ColGTOResult:
		return formatFloat(c.GTOResult)
	case ColPIMarks:
		return formatFloat(c.PIMarks)
	case ColSSBScore:
		return formatFloat(c.SSBScore)
	case ColConferenceMarks:
		return formatNull(c.ConferenceMarks)
	case ColRankSecured:
		return formatNull(c.RankSecured)
	case ColRegion:
		return c.Region
	case ColGender:
		return c.Gender
	case ColRecommended:
		return c.Recommended
	default:
		return c.extra[col]
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNull(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return formatFloat(v.Float64)
}
