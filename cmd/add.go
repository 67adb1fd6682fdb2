package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-mate/internal/profile"
)

var addCmd = &cobra.Command{
	Use:   "add <work|project|education|skill> <description...>",
	Short: "Add an entry to the master profile from a natural language description",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		category, err := profile.ParseCategory(args[0])
		cobra.CheckErr(err)
		description := strings.Join(args[1:], " ")

		s := newSession()
		p := s.load()

		entry, err := s.assistant().ExtractEntry(s.ctx, category, description)
		if err != nil {
			s.fatal("extracting the entry", err, zap.String("category", category.String()))
		}

		preview, err := profile.MarshalEntry(entry)
		if err != nil {
			s.fatal("encoding the entry", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n%s\n", category.Key(), preview)

		if !s.confirm(fmt.Sprintf("Add this %s to the profile", category)) {
			s.logger.Info("exiting", zap.String("reason", "entry discarded"))
			return
		}

		updated, err := profile.AppendEntry(p, entry)
		if err != nil {
			s.fatal("adding the entry", err)
		}

		s.save(updated)
		s.logger.Info("entry added", zap.String("category", category.String()))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
