package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonscalar/internal/errors"
	"github.com/mcncl/jsonscalar/internal/models"
)

// Line is one document of a line-delimited input
type Line struct {
	Number int // 1-based line number in the input
	Source string
	Value  models.Value
	Result models.Result
	Offset int // byte offset within Source where parsing stopped
}

// Err returns the parse error for the line, or nil if it parsed
func (l Line) Err() error {
	if l.Result == models.ResultOK {
		return nil
	}
	return errors.NewParsingError(
		fmt.Sprintf("line %d, offset %d", l.Number, l.Offset),
		l.Result.Err(),
	)
}

// SyntaxError describes a document that failed to parse
type SyntaxError struct {
	Result models.Result
	Offset int // byte offset where parsing stopped
}

func (e *SyntaxError) Error() string {
	return e.Result.Err().Error()
}

// Unwrap returns the sentinel for Result
func (e *SyntaxError) Unwrap() error {
	return e.Result.Err()
}

// ParseString parses a single JSON document from a string. A failure is a
// parsing *errors.AppError wrapping a *SyntaxError.
func ParseString(json string) (models.Value, error) {
	var v models.Value
	ret, off := ParseWithOffset(&v, json)
	if ret != models.ResultOK {
		return v, errors.NewParsingError(fmt.Sprintf("at offset %d", off), &SyntaxError{Result: ret, Offset: off})
	}
	return v, nil
}

// ParseBytes parses a single JSON document from a byte slice
func ParseBytes(data []byte) (models.Value, error) {
	return ParseString(string(data))
}

// ParseReader reads r to the end and parses the result as a single document
func ParseReader(r io.Reader) (models.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.NullValue(), errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseFile parses a single JSON document from a file path
func ParseFile(filePath string) (models.Value, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return models.NullValue(), err
	}
	return ParseBytes(data)
}

// ReadFile reads an input file, mapping the usual failures to input errors
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return data, nil
}

// ParseLines parses every non-blank line of input as its own document
func ParseLines(input string) []Line {
	var lines []Line
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), len(input)+1)

	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		line := Line{Number: n, Source: text}
		line.Result, line.Offset = ParseWithOffset(&line.Value, text)
		lines = append(lines, line)
	}
	return lines
}
