package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Normalize repairs common deviations in an extracted profile mapping: field names are
// canonicalized, text is trimmed and whitespace collapsed, empty values are dropped,
// dates are coerced and set-like lists deduplicated. The input is not modified and
// running Normalize on its own output returns an equal mapping.
func Normalize(raw map[string]any) (map[string]any, error) {
	cleaned, _ := cleanValue(canonicalProfileKeys(raw)).(map[string]any)
	if cleaned == nil {
		cleaned = map[string]any{}
	}

	var errs []error
	for _, c := range Categories {
		items, ok := cleaned[c.Key()].([]any)
		if !ok {
			continue
		}
		for i, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			errs = append(errs, normalizeEntryFields(c, fmt.Sprintf("%s[%d]", c.Key(), i), entry)...)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cleaned, nil
}

// NormalizeEntry is Normalize for a single entry of the given category.
func NormalizeEntry(c Category, raw map[string]any) (map[string]any, error) {
	cleaned, _ := cleanValue(canonicalEntryKeys(c, raw)).(map[string]any)
	if cleaned == nil {
		cleaned = map[string]any{}
	}

	if errs := normalizeEntryFields(c, c.String(), cleaned); len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cleaned, nil
}

func normalizeEntryFields(c Category, path string, entry map[string]any) []error {
	var errs []error

	if c != CategorySkill {
		for _, key := range []string{"startDate", "endDate"} {
			value, ok := entry[key]
			if !ok {
				continue
			}
			date, present, err := NormalizeDate(path+"."+key, value, key == "endDate")
			switch {
			case err != nil:
				errs = append(errs, err)
			case !present:
				delete(entry, key)
			default:
				entry[key] = date
			}
		}
	}

	setKey := "techStack"
	if c == CategorySkill {
		setKey = "keywords"
	}
	if c != CategoryEducation {
		if items, ok := entry[setKey].([]any); ok {
			entry[setKey] = dedupeFoldAny(items)
		}
	}

	return errs
}

// cleanValue returns a deep copy of v with strings trimmed and collapsed and with
// empty strings, lists and maps removed. A nil result means "drop this value".
func cleanValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		s := collapseSpace(val)
		if s == "" {
			return nil
		}
		return s
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if cleaned := cleanValue(item); cleaned != nil {
				out[k] = cleaned
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			if cleaned := cleanValue(item); cleaned != nil {
				out = append(out, cleaned)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		return cleanValue(items)
	default:
		return v
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedupeFoldAny(items []any) []any {
	out := make([]any, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			out = append(out, item)
			continue
		}
		key := foldCase(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// dedupeFold merges lists keeping the first spelling of every case-insensitive term.
func dedupeFold(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, s := range list {
			key := foldCase(s)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}
	return out
}
