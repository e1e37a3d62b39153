package cli

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/imageref"
	"github.com/tichlinh-png/trace-worksheet/pkg/pipeline"
	"github.com/tichlinh-png/trace-worksheet/pkg/wordlist"
)

// generateOpts holds the flags of the generate command.
type generateOpts struct {
	output  string
	formats string
	noCache bool
	render  pipeline.Options
	layout  layoutFlags
}

// layoutFlags override the layout stored in a worksheet file. Only flags
// the user actually set are applied.
type layoutFlags struct {
	perPage int
	repeat  int
	lines   int
	name    string
	logo    string
	title   string
}

func (l *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.perPage, "per-page", 0, "words per page (overrides the file)")
	cmd.Flags().IntVar(&l.repeat, "repeat", 0, "repetitions of the word per trace line")
	cmd.Flags().IntVar(&l.lines, "lines", 0, "trace lines per word")
	cmd.Flags().StringVar(&l.name, "name", "", "institution name shown in the header")
	cmd.Flags().StringVar(&l.logo, "logo", "", "institution logo image file")
	cmd.Flags().StringVar(&l.title, "title", "", "document title")
}

// apply copies the changed flags onto ws and revalidates its layout.
func (l *layoutFlags) apply(cmd *cobra.Command, ws *wordlist.Worksheet) error {
	flags := cmd.Flags()
	cfg := ws.Config
	if flags.Changed("per-page") {
		cfg.EntriesPerPage = l.perPage
	}
	if flags.Changed("repeat") {
		cfg.RepeatCount = l.repeat
	}
	if flags.Changed("lines") {
		cfg.LineCount = l.lines
	}
	if flags.Changed("name") {
		if err := apperr.ValidateText("institution name", l.name); err != nil {
			return err
		}
		cfg.InstitutionName = l.name
	}
	if flags.Changed("title") {
		if err := apperr.ValidateText("title", l.title); err != nil {
			return err
		}
		cfg.Title = l.title
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	ws.Config = cfg

	if flags.Changed("logo") {
		if l.logo == "" {
			ws.SetLogo(nil, "")
			return nil
		}
		logo, err := imageref.Load(l.logo)
		if err != nil {
			return err
		}
		ws.SetLogo(logo, l.logo)
	}
	return nil
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <worksheet>",
		Short: "Render a worksheet file to printable HTML, JSON or PDF",
		Long: `Render a worksheet file (.toml or .json) to printable output.

Output files are named after the input file unless -o is given. With several
formats, -o is used as the base name and each format adds its extension.`,
		Example: `  tracesheet generate animals.toml
  tracesheet generate animals.toml -f html,pdf -o out/animals
  tracesheet generate animals.toml --per-page 3 --repeat 8 --print`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				formats = []string{pipeline.FormatHTML}
			}
			opts.render.Formats = formats

			ws, err := wordlist.Load(args[0])
			if err != nil {
				return err
			}
			printWarnings(ws.Warnings)
			if err := opts.layout.apply(cmd, ws); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], ws, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or base path for several formats")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatHTML, "output format(s): html, json, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.render.AutoPrint, "print", false, "open the print dialog when the HTML is opened")
	cmd.Flags().BoolVar(&opts.render.NoPrintButton, "no-print-button", false, "omit the on-screen print button")
	cmd.Flags().StringVar(&opts.render.PrintButtonLabel, "button-label", "", "print button label")
	cmd.Flags().StringVar(&opts.render.Paper, "paper", "", "paper size: A4 (default), letter")
	cmd.Flags().BoolVar(&opts.render.Refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the output cache")
	opts.layout.register(cmd)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, input string, ws *wordlist.Worksheet, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if slices.Contains(opts.render.Formats, pipeline.FormatPDF) {
		spin = newSpinnerWithContext(ctx, "Converting to PDF...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, ws.Entries, ws.Config, opts.render)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("Generated worksheets")

	if result.Document.IsEmpty() {
		printWarning("No words to trace: every entry is blank")
	}

	paths := outputPaths(opts.output, input, result.Artifacts)
	for _, format := range opts.render.Formats {
		if samePath(paths[format], input) {
			return apperr.New(apperr.ErrCodeInvalidPath, "output %s would overwrite the input worksheet", paths[format])
		}
	}
	for _, format := range opts.render.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Generated %s", plural(result.Stats.Pages, "page"))
	for _, format := range opts.render.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	if p, ok := paths[pipeline.FormatHTML]; ok {
		printNewline()
		printNextStep("Open in a browser to print", p)
	}
	return nil
}

// outputPaths picks a file path for every rendered format. A single format
// with an explicit -o writes exactly there; otherwise the base name comes
// from -o (extension stripped) or the input file.
func outputPaths(output, input string, artifacts map[string][]byte) map[string]string {
	paths := make(map[string]string, len(artifacts))
	if len(artifacts) == 1 && output != "" && filepath.Ext(output) != "" {
		for format := range artifacts {
			paths[format] = output
		}
		return paths
	}
	base := basePath(output, input)
	for format := range artifacts {
		path := base + "." + format
		if samePath(path, input) {
			path = base + ".worksheet." + format
		}
		paths[format] = path
	}
	return paths
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// basePath strips a known extension from output, or derives the base from
// the input file when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeOutput(path string, data []byte) error {
	if err := apperr.ValidateOutputFilename(filepath.Base(path)); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return apperr.Wrap(apperr.ErrCodeInternal, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return apperr.Wrap(apperr.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
