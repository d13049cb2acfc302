package analyzer

import (
	stderrors "errors"
	"fmt"

	"github.com/mcncl/jsonscalar/internal/config"
	"github.com/mcncl/jsonscalar/internal/errors"
	"github.com/mcncl/jsonscalar/internal/logging"
	"github.com/mcncl/jsonscalar/internal/models"
	"github.com/mcncl/jsonscalar/internal/parser"
)

// Analyzer parses documents and collects a report for each of them
type Analyzer struct {
	// reports in the order documents were added
	reports []models.Report
	config  *config.Config
	log     *logging.Logger
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig(), logging.Discard())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config, log *logging.Logger) *Analyzer {
	return &Analyzer{
		reports: make([]models.Report, 0),
		config:  cfg,
		log:     log,
	}
}

// AddDocument parses source as a single document and records the report
func (a *Analyzer) AddDocument(label, source string) models.Report {
	r := models.Report{
		Index:  len(a.reports) + 1,
		Label:  label,
		Source: source,
		Offset: len(source),
	}
	v, err := parser.ParseString(source)
	r.Value = v
	if err != nil {
		var se *parser.SyntaxError
		if !stderrors.As(err, &se) {
			se = &parser.SyntaxError{Result: models.ResultInvalidValue}
		}
		r.Result, r.Offset = se.Result, se.Offset
	}
	a.record(r)
	return r
}

// AddInput adds the documents in input. In lines mode every non-blank line is
// a document labelled "<name>:<line>"; otherwise input is one document.
func (a *Analyzer) AddInput(name, input string) {
	if !a.config.Input.Lines {
		a.AddDocument(name, input)
		return
	}

	lines := parser.ParseLines(input)
	if len(lines) == 0 {
		a.log.Debug("no documents in input", "input", name)
	}
	for _, line := range lines {
		a.record(models.Report{
			Index:  len(a.reports) + 1,
			Label:  fmt.Sprintf("%s:%d", name, line.Number),
			Source: line.Source,
			Value:  line.Value,
			Result: line.Result,
			Offset: line.Offset,
		})
	}
}

func (a *Analyzer) record(r models.Report) {
	a.log.Debug("parsed document",
		"index", r.Index,
		"label", r.Label,
		"result", r.Result.String(),
		"type", r.Value.Type().String(),
		"offset", r.Offset,
	)
	a.reports = append(a.reports, r)
}

// Reports returns the reports collected so far
func (a *Analyzer) Reports() []models.Report {
	return a.reports
}

// Summarize tallies the reports collected so far
func (a *Analyzer) Summarize() models.Summary {
	s := models.Summary{
		ByType:   make(map[models.Type]int),
		ByResult: make(map[models.Result]int),
	}
	for _, r := range a.reports {
		s.Total++
		s.ByResult[r.Result]++
		if r.OK() {
			s.OK++
			s.ByType[r.Value.Type()]++
		} else {
			s.Failed++
		}
	}
	return s
}

// Analyze returns the reports and their summary
func (a *Analyzer) Analyze() models.AnalysisResult {
	return models.AnalysisResult{
		Reports: a.Reports(),
		Summary: a.Summarize(),
	}
}

// Err returns an error describing the first failed document, or nil when
// every document parsed. The error wraps both errors.ErrParseFailed and the
// failing document's result error.
func (a *Analyzer) Err() error {
	failed := 0
	var first *models.Report
	for i := range a.reports {
		if !a.reports[i].OK() {
			failed++
			if first == nil {
				first = &a.reports[i]
			}
		}
	}
	if first == nil {
		return nil
	}
	return errors.NewParsingError(
		fmt.Sprintf("%d of %d documents failed, first at %s offset %d", failed, len(a.reports), first.Label, first.Offset),
		fmt.Errorf("%w: %w", errors.ErrParseFailed, first.Result.Err()),
	)
}
