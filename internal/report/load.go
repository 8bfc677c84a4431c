// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultPath is where cucumber-js writes its JSON report in the projects we run against.
const DefaultPath = "./reports/cucumber-report.json"

// NotFoundError reports a missing report file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("report file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ParseError reports a report file that is not a JSON array of features.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing report: %v", e.Err)
	}
	return fmt.Sprintf("parsing report %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads and decodes the report at path.
func Load(path string) (Report, error) {
	data, err := os.ReadFile(path) //nolint:gosec // report path is operator supplied
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}

	rep, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return rep, nil
}

// Parse decodes report bytes. A top-level null decodes to an empty report.
func Parse(data []byte) (Report, error) {
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, &ParseError{Err: err}
	}
	return rep, nil
}

// Counts returns the number of scenarios and steps in the report.
func (r Report) Counts() (scenarios, steps int) {
	for _, f := range r {
		scenarios += len(f.Elements)
		for _, sc := range f.Elements {
			steps += len(sc.Steps)
		}
	}
	return scenarios, steps
}
