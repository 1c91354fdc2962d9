package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// HazardList is the canonical container for H/P codes, pictograms and hazard
// classes at the service boundary. Clients send these fields in three shapes;
// all of them decode to the same sorted, deduplicated list.
type HazardList []string

type hazardListForm int

const (
	formNull hazardListForm = iota
	formArray
	formEncodedArray
	formRawString
)

func (l *HazardList) UnmarshalJSON(data []byte) error {
	form, payload, err := detectHazardListForm(data)
	if err != nil {
		return err
	}

	var items []string
	switch form {
	case formNull:
	case formArray, formEncodedArray:
		if err := json.Unmarshal(payload, &items); err != nil {
			return WrapError(ErrInvalidInput, "decode hazard list", err)
		}
	case formRawString:
		items = strings.Split(string(payload), ",")
	}

	*l = NormalizeHazardList(items)
	return nil
}

// detectHazardListForm tags the wire value: a native JSON array, a string
// carrying a JSON-encoded array, or a raw comma-joined string.
func detectHazardListForm(data []byte) (hazardListForm, []byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return formNull, nil, nil
	}

	switch trimmed[0] {
	case '[':
		return formArray, trimmed, nil
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return 0, nil, WrapError(ErrInvalidInput, "decode hazard list", err)
		}
		inner := strings.TrimSpace(raw)
		if strings.HasPrefix(inner, "[") && json.Valid([]byte(inner)) {
			return formEncodedArray, []byte(inner), nil
		}
		return formRawString, []byte(inner), nil
	default:
		return 0, nil, WrapError(ErrInvalidInput, "decode hazard list", errors.New("expected array or string"))
	}
}

// NormalizeHazardList trims entries, drops blanks, sorts and deduplicates.
// The result is never nil.
func NormalizeHazardList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
