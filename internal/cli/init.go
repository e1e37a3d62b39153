package cli

import (
	"os"

	"github.com/spf13/cobra"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/wordlist"
)

func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter worksheet file",
		Long: `Write a starter worksheet with four animal words and the default layout.
The format follows the file extension (.toml or .json).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultWorksheetFile
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return apperr.New(apperr.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			if err := wordlist.Save(wordlist.Sample(), path); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("wrote sample worksheet", "path", path)

			printSuccess("Created worksheet")
			printFile(path)
			printNewline()
			printNextStep("Edit the words", "tracesheet edit "+path)
			printNextStep("Generate worksheets", "tracesheet generate "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
