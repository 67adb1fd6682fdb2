package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate [profile]",
	Short: "Validate the master profile against the schema",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 1 {
			viper.Set("profile", args[0])
		}

		s := newSession()
		p := s.load()

		s.logger.Info("profile is valid",
			zap.String("name", p.Basics.Name),
			zap.Int("work", len(p.Work)),
			zap.Int("projects", len(p.Projects)),
			zap.Int("education", len(p.Education)),
			zap.Int("skills", len(p.Skills)),
		)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
