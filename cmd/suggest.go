package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spigell/resume-mate/internal/ai"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Find gaps in the master profile and suggest improvements",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		p := s.load()

		suggestions, err := s.assistant().Suggest(s.ctx, p)
		if err != nil {
			s.fatal("reviewing the profile", err)
		}

		printSuggestions(cmd.OutOrStdout(), suggestions)
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func printSuggestions(w io.Writer, s *ai.Suggestions) {
	section := func(title string, items []string) {
		fmt.Fprintf(w, "%s:\n", title)
		if len(items) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, item := range items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
		fmt.Fprintln(w)
	}

	section("Gaps", s.Gaps)
	section("Suggestions", s.Suggestions)

	fmt.Fprintln(w, "Recommended skills:")
	if len(s.RecommendedSkills) == 0 {
		fmt.Fprintln(w, "  none")
	} else {
		fmt.Fprintf(w, "  %s\n", strings.Join(s.RecommendedSkills, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Overall critique:")
	critique := strings.TrimSpace(s.OverallCritique)
	if critique == "" {
		critique = "n/a"
	}
	fmt.Fprintf(w, "  %s\n", critique)
}
