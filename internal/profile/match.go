package profile

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMatchThreshold is the minimum similarity for two identity components to be
// considered equal.
const DefaultMatchThreshold = 0.85

// legalSuffixes are dropped from the end of company names before comparison so
// "Acme Corp" and "ACME Corporation" share a key.
var legalSuffixes = map[string]bool{
	"inc": true, "incorporated": true, "corp": true, "corporation": true,
	"co": true, "company": true, "llc": true, "llp": true, "ltd": true,
	"limited": true, "plc": true, "gmbh": true, "ag": true, "sa": true,
	"srl": true, "bv": true, "oy": true, "ab": true, "pty": true,
}

// Identity is the key an entry is matched on.
type Identity struct {
	// Parts are compared pairwise; every pair must be similar for a match.
	Parts []string
	// Exact disables fuzzy comparison. Parts then compare case-insensitively.
	Exact bool
}

// Identifiable is implemented by every entry kind the matcher understands.
type Identifiable interface {
	Identity() Identity
}

func (w WorkExperience) Identity() Identity {
	return Identity{Parts: []string{organizationKey(w.Name), matchKey(w.Position)}}
}

func (p Project) Identity() Identity {
	return Identity{Parts: []string{matchKey(p.Name)}}
}

func (e Education) Identity() Identity {
	return Identity{Parts: []string{matchKey(e.Institution), matchKey(e.Area), matchKey(e.StudyType)}}
}

// Identity of a skill is its name. Skill names are short and ambiguous, so they
// never match fuzzily.
func (s Skill) Identity() Identity {
	return Identity{Parts: []string{foldCase(strings.TrimSpace(s.Name))}, Exact: true}
}

func (n NetworkProfile) Identity() Identity {
	return Identity{Parts: []string{foldCase(strings.TrimSpace(n.Network))}, Exact: true}
}

// Matcher decides whether two entries denote the same real-world item.
type Matcher struct {
	Threshold float64
}

// NewMatcher returns a matcher using threshold, or DefaultMatchThreshold when
// threshold is outside (0, 1].
func NewMatcher(threshold float64) Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}
	return Matcher{Threshold: threshold}
}

// Score returns the similarity of two identities and whether they match.
// The score is the lowest similarity among the component pairs.
func (m Matcher) Score(a, b Identity) (float64, bool) {
	if len(a.Parts) != len(b.Parts) || len(a.Parts) == 0 {
		return 0, false
	}

	threshold := m.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultMatchThreshold
	}

	score := 1.0
	for i := range a.Parts {
		var s float64
		switch {
		case a.Exact || b.Exact:
			if a.Parts[i] == b.Parts[i] {
				s = 1
			}
		default:
			s = Similarity(a.Parts[i], b.Parts[i])
		}
		if s < score {
			score = s
		}
	}

	return score, score >= threshold
}

// Find returns the index of the entry in existing that best matches candidate.
// Ties go to the earliest index. ok is false when nothing matches.
func Find[T Identifiable](m Matcher, candidate T, existing []T) (idx int, ok bool) {
	key := candidate.Identity()
	best := -1.0
	idx = -1

	for i, item := range existing {
		score, matched := m.Score(key, item.Identity())
		if !matched || score <= best {
			continue
		}
		best, idx = score, i
	}

	return idx, idx != -1
}

// Similarity is the normalized InDel similarity of two strings: twice the length of
// their longest common subsequence divided by their total length. It is 1 for equal
// strings and 0 for strings without a common character.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return float64(2*lcsLength(ra, rb)) / float64(total)
}

func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// matchKey folds case and diacritics and drops everything but letters and digits.
// Text without any letter or digit keys on itself, so "-" and "..." stay distinct.
func matchKey(s string) string {
	if key := strings.Join(keyTokens(s), ""); key != "" {
		return key
	}
	return symbolKey(s)
}

// organizationKey is matchKey with trailing legal-entity suffixes removed.
func organizationKey(s string) string {
	tokens := keyTokens(s)
	if len(tokens) == 0 {
		return symbolKey(s)
	}
	end := len(tokens)
	for end > 1 && legalSuffixes[tokens[end-1]] {
		end--
	}
	return strings.Join(tokens[:end], "")
}

func symbolKey(s string) string {
	return foldCase(collapseSpace(s))
}

// Symbols that tell technologies apart ("C++", "C#") are spelled out before the
// remaining punctuation is dropped.
var symbolNames = strings.NewReplacer("+", " plus ", "#", " sharp ")

func keyTokens(s string) []string {
	s = symbolNames.Replace(s)
	stripMarks := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = foldCase(s)

	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}
