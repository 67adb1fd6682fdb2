package profile

import (
	"sort"
	"strings"
	"unicode"
)

// canonicalKey converts snake_case and kebab-case field names into the camelCase
// presentation form. Names already in camelCase are returned unchanged.
func canonicalKey(key string) string {
	key = strings.TrimSpace(key)
	if !strings.ContainsAny(key, "_-") {
		return key
	}

	var sb strings.Builder
	upper := false
	for _, r := range key {
		if r == '_' || r == '-' {
			upper = sb.Len() > 0
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// canonicalKeys returns a shallow copy of m with canonical key names. When a field
// is present under both its canonical name and an alias, the canonical one wins.
func canonicalKeys(m map[string]any, aliases map[string]string) map[string]any {
	if m == nil {
		return nil
	}

	out := make(map[string]any, len(m))
	var rest []string
	for k, v := range m {
		if canonicalKey(k) == k && aliases[k] == "" {
			out[k] = v
			continue
		}
		rest = append(rest, k)
	}

	sort.Strings(rest)
	for _, k := range rest {
		ck := canonicalKey(k)
		if alias, ok := aliases[ck]; ok {
			ck = alias
		}
		if _, exists := out[ck]; exists {
			continue
		}
		out[ck] = m[k]
	}

	return out
}

func canonicalEntryKeys(c Category, raw map[string]any) map[string]any {
	return canonicalKeys(raw, c.aliases())
}

func canonicalProfileKeys(raw map[string]any) map[string]any {
	out := canonicalKeys(raw, nil)
	if out == nil {
		return nil
	}

	if basics, ok := out["basics"].(map[string]any); ok {
		basics = canonicalKeys(basics, nil)
		if loc, ok := basics["location"].(map[string]any); ok {
			basics["location"] = canonicalKeys(loc, nil)
		}
		if profiles, ok := basics["profiles"].([]any); ok {
			basics["profiles"] = mapEach(profiles, func(m map[string]any) map[string]any {
				return canonicalKeys(m, nil)
			})
		}
		out["basics"] = basics
	}

	for _, c := range Categories {
		items, ok := out[c.Key()].([]any)
		if !ok {
			continue
		}
		out[c.Key()] = mapEach(items, func(m map[string]any) map[string]any {
			return canonicalEntryKeys(c, m)
		})
	}

	return out
}

// mapEach applies fn to every map element of items, leaving other elements as they are.
func mapEach(items []any, fn func(map[string]any) map[string]any) []any {
	out := make([]any, len(items))
	for i, item := range items {
		if m, ok := item.(map[string]any); ok {
			out[i] = fn(m)
			continue
		}
		out[i] = item
	}
	return out
}
