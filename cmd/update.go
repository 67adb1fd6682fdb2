package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/logger"
	"github.com/spigell/resume-mate/internal/profile"
)

var updateCmd = &cobra.Command{
	Use:   "update <resume-file>",
	Short: "Merge a new resume into the master profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		current := s.load()

		text, attachments := s.source(args[0])

		s.logger.Info("extracting the candidate profile", logger.ProfileFields("", args[0])...)
		candidate, err := s.assistant().Extract(s.ctx, text, attachments)
		if err != nil {
			s.fatal("extracting the candidate profile", err)
		}

		merged, report, err := profile.Merge(current, candidate, profile.WithMatcher(profile.NewMatcher(s.config.MatchThreshold)))
		if err != nil {
			s.fatal("merging profiles", err)
		}
		s.logger.Info("profiles merged", logger.MergeReport(report))

		diff, err := profileDiff(current, merged)
		if err != nil {
			s.fatal("comparing profiles", err)
		}
		if diff == "" {
			s.logger.Info("exiting", zap.String("reason", "nothing new in the document"))
			return
		}

		fmt.Fprintln(cmd.OutOrStdout(), diff)

		if !s.confirm("Apply these changes") {
			s.logger.Info("exiting", zap.String("reason", "update cancelled, no changes made"))
			return
		}

		s.save(merged)
		s.logger.Info("profile updated")
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
