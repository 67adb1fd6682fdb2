package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/profile"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter master profile",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s := newSession()

		exists, err := s.store.Exists(s.ctx)
		if err != nil {
			s.fatal("checking the profile", err)
		}
		if exists && !s.confirm("Profile already exists. Overwrite it") {
			s.logger.Info("exiting", zap.String("reason", "profile kept"))
			return
		}

		s.save(profile.Scaffold())
		s.logger.Info("starter profile written")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
