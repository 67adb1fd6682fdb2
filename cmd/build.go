package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the resume PDF from the master profile",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		p := s.load()

		theme, _ := cmd.Flags().GetString("theme")
		output, _ := cmd.Flags().GetString("output")

		s.buildPDF(s.renderer(theme), p, output)
		s.logger.Info("resume built", zap.String("output", output))
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("theme", "t", "", "theme to use (default from config)")
	buildCmd.Flags().StringP("output", "o", "output/resume.pdf", "output PDF file")
}
