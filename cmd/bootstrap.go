package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/logger"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <resume-file>",
	Short: "Create the master profile from an existing resume (PDF, DOCX, HTML, TXT, MD)",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s := newSession()

		exists, err := s.store.Exists(s.ctx)
		if err != nil {
			s.fatal("checking the profile", err)
		}
		if exists && !s.confirm("Profile already exists. Overwrite it") {
			s.logger.Info("exiting", zap.String("reason", "profile kept"))
			return
		}

		text, attachments := s.source(args[0])

		s.logger.Info("converting the resume into a master profile", logger.ProfileFields("", args[0])...)
		p, err := s.assistant().Bootstrap(s.ctx, text, attachments)
		if err != nil {
			s.fatal("bootstrapping the profile", err)
		}

		s.save(p)
		s.logger.Info("master profile bootstrapped",
			zap.Int("work", len(p.Work)),
			zap.Int("projects", len(p.Projects)),
			zap.Int("education", len(p.Education)),
			zap.Int("skills", len(p.Skills)),
		)
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}
