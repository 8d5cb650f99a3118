package models

import (
	"encoding/json"
	"errors"
)

// DecodeReport lists the fields that had to be coerced while decoding a
// stored bundle.
type DecodeReport struct {
	// Coerced holds fields that were missing or not arrays.
	Coerced []string
	// Dropped counts elements skipped per field.
	Dropped map[string]int
}

// Clean reports whether the stored data decoded without any coercion.
func (r DecodeReport) Clean() bool {
	return len(r.Coerced) == 0 && len(r.Dropped) == 0
}

var errNotAnObject = errors.New("stored bundle is not a JSON object")

// DecodeBundle decodes stored bundle data without ever failing on shape
// problems. Missing or wrongly typed collections become empty, and elements
// that do not decode are dropped. A non-nil error is informational only; the
// returned bundle is always usable.
func DecodeBundle(data []byte) (Bundle, DecodeReport, error) {
	report := DecodeReport{Dropped: make(map[string]int)}

	b := NewBundle()

	if len(data) == 0 {
		return b, report, nil
	}

	var fields map[string]json.RawMessage

	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		report.Coerced = append(
			report.Coerced,
			"schedules",
			"tags",
			"tagItems",
			"monthlyPlans",
			"monthlyGoals",
		)

		if err == nil {
			err = errNotAnObject
		}

		return b, report, err
	}

	b.Schedules = decodeArray[Schedule](fields, "schedules", &report)
	b.Tags = decodeArray[Tag](fields, "tags", &report)
	b.TagItems = decodeArray[TagItem](fields, "tagItems", &report)
	b.MonthlyPlans = decodeArray[MonthlyPlan](fields, "monthlyPlans", &report)
	b.MonthlyGoals = decodeArray[MonthlyGoal](fields, "monthlyGoals", &report)

	b.Normalize()

	return b, report, nil
}

func decodeArray[T any](
	fields map[string]json.RawMessage,
	name string,
	report *DecodeReport,
) []T {
	raw, ok := fields[name]
	if !ok {
		report.Coerced = append(report.Coerced, name)
		return []T{}
	}

	var elems []json.RawMessage

	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		report.Coerced = append(report.Coerced, name)
		return []T{}
	}

	out := make([]T, 0, len(elems))

	for _, e := range elems {
		var v T

		if err := json.Unmarshal(e, &v); err != nil {
			report.Dropped[name]++
			continue
		}

		out = append(out, v)
	}

	return out
}
