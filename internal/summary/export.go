// SPDX-License-Identifier: AGPL-3.0-or-later

package summary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bartekus/cukesum/internal/projection"
)

// WriteJSON writes agg as indented JSON to path, replacing any previous file atomically.
func WriteJSON(path string, agg *Aggregate) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(agg); err != nil {
		return fmt.Errorf("encoding aggregate: %w", err)
	}
	if err := projection.AtomicWrite(path, buf.Bytes()); err != nil {
		return fmt.Errorf("writing aggregate %s: %w", path, err)
	}
	return nil
}
