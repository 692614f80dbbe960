package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spektr-org/moviescope/engine"
)

// openOutput returns stdout, or the --out file when set.
func openOutput() (io.Writer, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() {
		f.Close()
		fmt.Fprintf(os.Stderr, "📄 Output written to %s\n", outFile)
	}, nil
}

// ============================================================================
// CSV OUTPUT — chart or table data, ready for Sheets
// ============================================================================

// writeCSV prefers the chart when one is given, then the table.
func writeCSV(w io.Writer, chart *engine.ChartConfig, table *engine.TableData) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if chart != nil && writeChartCSV(cw, chart) {
		return
	}
	if table != nil && writeTableCSV(cw, table) {
		return
	}
	cw.Write([]string{"Result", "No data"})
}

func writeChartCSV(cw *csv.Writer, chart *engine.ChartConfig) bool {
	if len(chart.Series) == 0 {
		return false
	}

	xLabel := chart.XAxis
	if xLabel == "" {
		xLabel = "Label"
	}

	// Series are joined on label: the rating line skips unrated buckets.
	headers := []string{xLabel}
	values := make([]map[string]float64, len(chart.Series))
	for i, s := range chart.Series {
		headers = append(headers, s.Name)
		values[i] = make(map[string]float64, len(s.Data))
		for _, d := range s.Data {
			values[i][d.Label] = d.Value
		}
	}
	cw.Write(headers)

	for _, d := range chart.Series[0].Data {
		row := []string{d.Label}
		for i := range chart.Series {
			if v, ok := values[i][d.Label]; ok {
				row = append(row, fmtNum(v))
			} else {
				row = append(row, "")
			}
		}
		cw.Write(row)
	}
	return true
}

func writeTableCSV(cw *csv.Writer, table *engine.TableData) bool {
	if len(table.Columns) == 0 {
		return false
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range table.Rows {
		cw.Write(row)
	}
	return true
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v interface{}, format string) {
	var out []byte
	var err error

	if format == "pretty" {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}

	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
