package tools

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// tabularMaxRows caps how many data rows are loaded from a file.
const tabularMaxRows = 10000

// TabularInspector loads a CSV file and answers structural questions about
// it: column schema, a row preview, or per-column numeric summaries.
type TabularInspector struct{}

// NewTabularInspector creates the interact_tabular tool.
func NewTabularInspector() *TabularInspector {
	return &TabularInspector{}
}

func (t *TabularInspector) Name() string {
	return "interact_tabular"
}

func (t *TabularInspector) Description() string {
	return "Inspect a tabular CSV file. Operation 'schema' lists columns and " +
		"inferred types, 'head' previews the first rows, 'describe' summarizes " +
		"numeric columns (count, min, max, mean)."
}

func (t *TabularInspector) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path of the CSV file to inspect.",
			},
			"operation": map[string]any{
				"type":        "string",
				"enum":        []string{"schema", "head", "describe"},
				"description": "What to report about the file. Defaults to 'describe'.",
			},
			"rows": map[string]any{
				"type":        "integer",
				"description": "Number of rows for the 'head' operation. Defaults to 5.",
			},
		},
		"required":             []string{"file_path"},
		"additionalProperties": false,
	}
}

// table is the loaded file: a header plus row-major records.
type table struct {
	header []string
	rows   [][]string
}

func loadCSV(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, report them as text

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}
	rows := records[1:]
	if len(rows) > tabularMaxRows {
		rows = rows[:tabularMaxRows]
	}
	return &table{header: records[0], rows: rows}, nil
}

// columnValues collects the non-empty values of column i.
func (tb *table) columnValues(i int) []string {
	var vals []string
	for _, row := range tb.rows {
		if i < len(row) && row[i] != "" {
			vals = append(vals, row[i])
		}
	}
	return vals
}

// numericColumn parses column i as float64s; ok is false if any non-empty
// value fails to parse.
func (tb *table) numericColumn(i int) ([]float64, bool) {
	vals := tb.columnValues(i)
	if len(vals) == 0 {
		return nil, false
	}
	nums := make([]float64, 0, len(vals))
	for _, v := range vals {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, true
}

func (tb *table) schema() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d columns, %d rows\n\n", len(tb.header), len(tb.rows))
	for i, name := range tb.header {
		kind := "text"
		if _, ok := tb.numericColumn(i); ok {
			kind = "numeric"
		}
		fmt.Fprintf(&sb, "%s: %s\n", name, kind)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (tb *table) head(n int) string {
	if n <= 0 {
		n = 5
	}
	if n > len(tb.rows) {
		n = len(tb.rows)
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(tb.header, " | "))
	sb.WriteString("\n")
	for _, row := range tb.rows[:n] {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (tb *table) describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d columns, %d rows\n", len(tb.header), len(tb.rows))
	for i, name := range tb.header {
		nums, ok := tb.numericColumn(i)
		if !ok {
			distinct := make(map[string]bool)
			for _, v := range tb.columnValues(i) {
				distinct[v] = true
			}
			fmt.Fprintf(&sb, "\n%s (text): count=%d distinct=%d", name, len(tb.columnValues(i)), len(distinct))
			continue
		}
		min, max, sum := nums[0], nums[0], 0.0
		for _, v := range nums {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
		}
		fmt.Fprintf(&sb, "\n%s (numeric): count=%d min=%s max=%s mean=%s",
			name, len(nums), formatNumber(min), formatNumber(max), formatNumber(sum/float64(len(nums))))
	}
	return sb.String()
}

func (t *TabularInspector) Call(ctx context.Context, raw json.RawMessage) (string, error) {
	var args struct {
		FilePath  string `json:"file_path"`
		Operation string `json:"operation"`
		Rows      int    `json:"rows"`
	}
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	tb, err := loadCSV(args.FilePath)
	if err != nil {
		return "", err
	}

	switch args.Operation {
	case "schema":
		return tb.schema(), nil
	case "head":
		return tb.head(args.Rows), nil
	case "describe", "":
		return tb.describe(), nil
	default:
		return "", fmt.Errorf("unknown operation %q: want schema, head or describe", args.Operation)
	}
}
