package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/extract"
	"github.com/spigell/resume-mate/internal/profile"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor <job-description-file>",
	Short: "Tailor the resume to a job description",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		s := newSession()
		p := s.load()

		theme, _ := cmd.Flags().GetString("theme")
		output, _ := cmd.Flags().GetString("output")
		language, _ := cmd.Flags().GetString("language")
		if language == "" {
			language = s.config.AI.Language
		}

		jobDescription, err := extract.Text(args[0])
		if err != nil {
			s.fatal("reading the job description", err)
		}

		// Fail on a bad theme before spending any generation.
		renderer := s.renderer(theme)
		assistant := s.assistant()

		analysis, err := assistant.AnalyzeJob(s.ctx, jobDescription)
		if err != nil {
			s.fatal("analyzing the job description", err)
		}
		s.logger.Info("job analyzed",
			zap.Strings("keywords", firstN(analysis.Keywords, 5)),
			zap.String("mission", analysis.RoleMission),
		)

		tailored, err := assistant.Tailor(s.ctx, p, analysis, language)
		if err != nil {
			s.fatal("tailoring the profile", err)
		}

		data, err := profile.Marshal(tailored)
		if err != nil {
			s.fatal("encoding the tailored profile", err)
		}
		yamlOutput := tailoredYAMLPath(output)
		if err := writeOutput(yamlOutput, data); err != nil {
			s.logger.Fatal("writing the tailored profile", zap.Error(err))
		}
		s.logger.Info("tailored profile saved", zap.String("output", yamlOutput))

		s.buildPDF(renderer, tailored, output)
		s.logger.Info("tailored resume built", zap.String("output", output))
	},
}

func init() {
	rootCmd.AddCommand(tailorCmd)

	tailorCmd.Flags().StringP("theme", "t", "", "theme to use (default from config)")
	tailorCmd.Flags().StringP("output", "o", "output/tailored_resume.pdf", "output PDF file; the tailored profile is saved next to it as YAML")
	tailorCmd.Flags().StringP("language", "l", "", "language of the tailored resume (default from config)")
}

func tailoredYAMLPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".yaml"
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
