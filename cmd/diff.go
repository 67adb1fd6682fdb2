package cmd

import (
	"github.com/pmezard/go-difflib/difflib"

	"github.com/spigell/resume-mate/internal/profile"
)

// profileDiff returns a unified diff of the YAML forms of two profiles. It is empty
// when both serialize identically.
func profileDiff(before, after *profile.MasterProfile) (string, error) {
	a, err := profile.Marshal(before)
	if err != nil {
		return "", err
	}
	b, err := profile.Marshal(after)
	if err != nil {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "current",
		ToFile:   "proposed",
		Context:  3,
	})
}
