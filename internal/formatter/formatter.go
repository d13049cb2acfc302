package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonscalar/internal/config"
	"github.com/mcncl/jsonscalar/internal/models"
)

// Formatter renders parse reports as text, JSON or YAML
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter instance with default configuration
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig())
}

// NewFormatterWithConfig creates a new Formatter instance using cfg
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// Format renders result in the configured output format
func (f *Formatter) Format(result models.AnalysisResult) (string, error) {
	switch f.config.Output.Format {
	case config.FormatText, "":
		return f.formatText(result), nil
	case config.FormatJSON:
		return f.formatJSON(result)
	case config.FormatYAML:
		return f.formatYAML(result)
	default:
		return "", fmt.Errorf("unsupported output format '%s'", f.config.Output.Format)
	}
}

// FormatNumber renders n with the configured precision
func (f *Formatter) FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'g', f.config.Output.Precision, 64)
}

// formatText writes one line per document:
//
//	arg 1: number 1.5
//	arg 2: error root_not_singular at offset 4 (source "true x")
func (f *Formatter) formatText(result models.AnalysisResult) string {
	var buf strings.Builder

	for _, r := range result.Reports {
		buf.WriteString(r.Label)
		buf.WriteString(": ")
		if r.OK() {
			buf.WriteString(r.Value.Type().String())
			if r.Value.IsNumber() {
				buf.WriteString(" ")
				buf.WriteString(f.FormatNumber(r.Value.MustNumber()))
			}
		} else {
			fmt.Fprintf(&buf, "error %s at offset %d", r.Result, r.Offset)
			if f.config.Output.ShowSource {
				fmt.Fprintf(&buf, " (source %s)", strconv.Quote(r.Source))
			}
		}
		buf.WriteString("\n")
	}

	if f.config.Output.Summary {
		s := result.Summary
		fmt.Fprintf(&buf, "total: %d, ok: %d, failed: %d\n", s.Total, s.OK, s.Failed)
		for _, line := range f.tallyLines(s) {
			buf.WriteString("  ")
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}

	return buf.String()
}

// tallyLines lists non-zero per-type and per-result counts in a stable order
func (f *Formatter) tallyLines(s models.Summary) []string {
	var lines []string
	for _, t := range []models.Type{models.TypeNull, models.TypeFalse, models.TypeTrue, models.TypeNumber} {
		if n := s.ByType[t]; n > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", t, n))
		}
	}

	failures := make([]models.Result, 0, len(s.ByResult))
	for r, n := range s.ByResult {
		if r != models.ResultOK && n > 0 {
			failures = append(failures, r)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i] < failures[j] })
	for _, r := range failures {
		lines = append(lines, fmt.Sprintf("%s: %d", r, s.ByResult[r]))
	}
	return lines
}

// document builds the structured report for JSON and YAML output.
// Keys are written in snake_case here and converted by config.KeyName.
func (f *Formatter) document(result models.AnalysisResult, number func(float64) any) map[string]any {
	docs := make([]map[string]any, 0, len(result.Reports))
	for _, r := range result.Reports {
		entry := map[string]any{
			f.key("index"):  r.Index,
			f.key("label"):  r.Label,
			f.key("result"): r.Result.String(),
		}
		if f.config.Output.ShowSource {
			entry[f.key("source")] = r.Source
		}
		if r.OK() {
			entry[f.key("type")] = r.Value.Type().String()
			if r.Value.IsNumber() {
				entry[f.key("number")] = number(r.Value.MustNumber())
			}
		} else {
			entry[f.key("error_offset")] = r.Offset
			entry[f.key("error")] = r.Result.Err().Error()
		}
		docs = append(docs, entry)
	}

	out := map[string]any{f.key("documents"): docs}
	if f.config.Output.Summary {
		s := result.Summary
		byType := make(map[string]int, len(s.ByType))
		for t, n := range s.ByType {
			byType[t.String()] = n
		}
		byResult := make(map[string]int, len(s.ByResult))
		for r, n := range s.ByResult {
			byResult[r.String()] = n
		}
		out[f.key("summary")] = map[string]any{
			f.key("total"):     s.Total,
			f.key("ok"):        s.OK,
			f.key("failed"):    s.Failed,
			f.key("by_type"):   byType,
			f.key("by_result"): byResult,
		}
	}
	return out
}

func (f *Formatter) key(name string) string {
	return f.config.KeyName(name)
}

func (f *Formatter) formatJSON(result models.AnalysisResult) (string, error) {
	doc := f.document(result, func(n float64) any {
		return json.Number(f.FormatNumber(n))
	})

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return buf.String(), nil
}

func (f *Formatter) formatYAML(result models.AnalysisResult) (string, error) {
	doc := f.document(result, func(n float64) any {
		// Round through the configured precision so YAML and JSON agree
		rounded, err := strconv.ParseFloat(f.FormatNumber(n), 64)
		if err != nil {
			return n
		}
		return rounded
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return buf.String(), nil
}
