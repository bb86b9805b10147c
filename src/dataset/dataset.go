// Package dataset loads chart series from CSV, XLSX and JSONL files and
// generates demo data.
package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/logging"
)

// ErrUnsupportedFormat is returned for file extensions without a loader.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// ErrNoSeries is returned when a file contains no numeric column.
var ErrNoSeries = errors.New("no numeric series found")

// Column is one named series of samples. Cells that are not numbers are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Load picks a loader by file extension and returns at most
// chartview.MaxSeries columns.
func Load(path string) ([]Column, error) {
	var (
		cols []Column
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cols, err = loadCSVFile(path)
	case ".xlsx":
		cols, err = LoadXLSX(path, "")
	case ".jsonl", ".ndjson":
		cols, err = loadJSONLFile(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	if err != nil {
		return nil, err
	}
	return limit(cols, path)
}

func limit(cols []Column, src string) ([]Column, error) {
	if len(cols) == 0 {
		return nil, errors.Wrapf(ErrNoSeries, "%s", src)
	}
	if len(cols) > chartview.MaxSeries {
		logging.Warnf("%s: %d series found, only the first %d are shown", src, len(cols), chartview.MaxSeries)
		cols = cols[:chartview.MaxSeries]
	}
	return cols, nil
}

func loadCSVFile(path string) ([]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open csv")
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads a header row of names followed by numeric rows.
func ReadCSV(r io.Reader) ([]Column, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	return fromRows(rows), nil
}

// LoadXLSX reads sheet (the first sheet when empty) with the same layout as
// ReadCSV: the first row holds names, the following rows samples.
func LoadXLSX(path, sheet string) ([]Column, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "open xlsx")
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read sheet %q", sheet)
	}
	return fromRows(rows), nil
}

// fromRows turns a header plus data rows into columns, dropping columns
// without a single numeric cell.
func fromRows(rows [][]string) []Column {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	width := len(header)
	for _, r := range rows[1:] {
		if len(r) > width {
			width = len(r)
		}
	}
	cols := make([]Column, width)
	numeric := make([]bool, width)
	for i := range cols {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = "Series " + strconv.Itoa(i+1)
		}
		cols[i] = Column{Name: name, Values: make([]float64, 0, len(rows)-1)}
	}
	for _, r := range rows[1:] {
		for i := range cols {
			v := math.NaN()
			if i < len(r) {
				if f, err := strconv.ParseFloat(strings.TrimSpace(r[i]), 64); err == nil {
					v = f
					numeric[i] = true
				}
			}
			cols[i].Values = append(cols[i].Values, v)
		}
	}
	out := cols[:0]
	for i, c := range cols {
		if numeric[i] {
			out = append(out, c)
		}
	}
	return out
}

type jsonlRecord struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

func loadJSONLFile(path string) ([]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open jsonl")
	}
	defer f.Close()
	return ReadJSONL(f)
}

// ReadJSONL reads one {"name": ..., "values": [...]} object per line. null
// samples become NaN; blank lines are skipped.
func ReadJSONL(r io.Reader) ([]Column, error) {
	var out []Column
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var rec jsonlRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		c := Column{Name: rec.Name, Values: make([]float64, len(rec.Values))}
		if c.Name == "" {
			c.Name = "Series " + strconv.Itoa(len(out)+1)
		}
		for i, v := range rec.Values {
			if v == nil {
				c.Values[i] = math.NaN()
			} else {
				c.Values[i] = *v
			}
		}
		out = append(out, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read jsonl")
	}
	return out, nil
}

// Demo returns five series of n samples whose magnitudes differ by orders of
// magnitude, so that every axis needs its own range.
func Demo(n int) []Column {
	if n < 2 {
		n = 2
	}
	cols := []Column{
		{Name: "Temperature [°C]"},
		{Name: "Pressure [hPa]"},
		{Name: "Flow [l/min]"},
		{Name: "Voltage [mV]"},
		{Name: "Error count"},
	}
	for i := range cols {
		cols[i].Values = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		cols[0].Values[i] = 21 + 4*math.Sin(2*math.Pi*3*x)
		cols[1].Values[i] = 1013 + 12*math.Cos(2*math.Pi*1.5*x) + 3*math.Sin(2*math.Pi*17*x)
		cols[2].Values[i] = 0.8 + 0.6*x + 0.1*math.Sin(2*math.Pi*40*x)
		cols[3].Values[i] = -250 + 500*math.Exp(-8*(x-0.6)*(x-0.6))
		cols[4].Values[i] = math.Floor(math.Abs(50 * math.Sin(2*math.Pi*5*x) * x))
	}
	return cols
}

// Apply loads cols into the chart slots in order. Slots beyond the columns
// are left untouched.
func Apply(ch *chartview.Chart, cols []Column) error {
	for i, c := range cols {
		if i >= chartview.MaxSeries {
			break
		}
		if err := ch.SetSeries(i, c.Values, true, c.Name); err != nil {
			return err
		}
	}
	return nil
}
