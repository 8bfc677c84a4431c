// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sink publishes a rendered summary to a step-summary file or the console.
package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/bartekus/cukesum/internal/console"
)

// Target names the step-summary file. An empty Path means the console.
type Target struct {
	Path string
}

// Publish appends text to the target file, or prints it when no file is configured.
//
// Appended summaries start with a blank line so they never run into whatever an
// earlier CI step left in the same file.
func Publish(text string, target Target, con *console.Console) error {
	if target.Path == "" {
		con.Success("Test Summary:")
		if _, err := io.WriteString(con.Out(), text); err != nil {
			return fmt.Errorf("printing summary: %w", err)
		}
		return nil
	}

	if err := appendFile(target.Path, "\n"+text); err != nil {
		return err
	}
	con.Success("Test summary added to GitHub step summary")
	return nil
}

func appendFile(path, text string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // path comes from CI configuration
	if err != nil {
		return fmt.Errorf("opening step summary %s: %w", path, err)
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("closing step summary %s: %w", path, cerr)
		}
	}()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("writing step summary %s: %w", path, err)
	}
	return nil
}
