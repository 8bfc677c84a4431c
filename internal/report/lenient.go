// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Formatters disagree on scalar types for a few fields: some write "line" as a
// string, some write a structured error_message. Those fields decode leniently;
// the shape of the document (arrays of features, scenarios, steps) stays strict.

// looseInt accepts a JSON number or a numeric string. Anything else decodes as 0.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	*n = 0
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	default:
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		*n = looseInt(i)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && math.Abs(f) < math.MaxInt32 {
		*n = looseInt(math.Round(f))
	}
	return nil
}

func (s *Scenario) UnmarshalJSON(data []byte) error {
	type plain Scenario
	aux := struct {
		*plain
		Line looseInt `json:"line"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Line = int(aux.Line)
	return nil
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	type plain Tag
	aux := struct {
		*plain
		Line looseInt `json:"line"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Line = int(aux.Line)
	return nil
}

func (s *Step) UnmarshalJSON(data []byte) error {
	type plain Step
	aux := struct {
		*plain
		Line looseInt `json:"line"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Line = int(aux.Line)
	return nil
}

// UnmarshalJSON decodes a step result. A status that is not a string is treated
// as unknown. An error_message that is not a string is kept as its compact JSON
// text so the failure still shows what the formatter reported.
func (r *Result) UnmarshalJSON(data []byte) error {
	type plain Result
	aux := struct {
		*plain
		Status       json.RawMessage `json:"status"`
		ErrorMessage json.RawMessage `json:"error_message"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Status = ""
	var status string
	if json.Unmarshal(aux.Status, &status) == nil {
		r.Status = status
	}

	r.ErrorMessage = nil
	raw := bytes.TrimSpace(aux.ErrorMessage)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var msg string
	if json.Unmarshal(raw, &msg) == nil {
		r.ErrorMessage = &msg
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return err
	}
	msg = buf.String()
	r.ErrorMessage = &msg
	return nil
}
