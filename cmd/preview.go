package cmd

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the resume to HTML and open it in the default browser",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession()
		p := s.load()

		theme, _ := cmd.Flags().GetString("theme")
		output, _ := cmd.Flags().GetString("output")
		noOpen, _ := cmd.Flags().GetBool("no-open")

		html, err := s.renderer(theme).HTML(p)
		if err != nil {
			s.fatal("rendering html", err)
		}
		if err := writeOutput(output, []byte(html)); err != nil {
			s.logger.Fatal("writing html", zap.Error(err))
		}
		s.logger.Info("html generated", zap.String("output", output))

		if noOpen {
			return
		}
		if err := openBrowser(output); err != nil {
			s.logger.Warn("opening the browser", zap.Error(err), zap.String("output", output))
		}
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("theme", "t", "", "theme to use (default from config)")
	previewCmd.Flags().StringP("output", "o", "output/preview.html", "output HTML file")
	previewCmd.Flags().Bool("no-open", false, "do not open the result in a browser")
}

func openBrowser(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	url := "file://" + filepath.ToSlash(abs)

	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		c = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("opening a browser is not supported on %s", runtime.GOOS)
	}
	return c.Start()
}
