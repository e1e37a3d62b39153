package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tichlinh-png/trace-worksheet/pkg/wordlist"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

func (c *CLI) inspectCommand() *cobra.Command {
	var layout layoutFlags

	cmd := &cobra.Command{
		Use:   "inspect <worksheet>",
		Short: "Show the pages a worksheet file produces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := wordlist.Load(args[0])
			if err != nil {
				return err
			}
			if err := layout.apply(cmd, ws); err != nil {
				return err
			}

			doc, err := worksheet.Generate(ws.Entries, ws.Config)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("inspected worksheet", "path", args[0], "pages", len(doc.Pages))

			printWarnings(ws.Warnings)
			printInspect(doc, len(ws.Entries))
			return nil
		},
	}
	layout.register(cmd)
	return cmd
}

func printInspect(doc worksheet.Document, total int) {
	cfg := doc.Config
	stats := worksheet.Summarize(doc)

	fmt.Println(StyleTitle.Render(cfg.Title))
	if cfg.InstitutionName != "" {
		printKeyValue("Institution", cfg.InstitutionName)
	}
	logo := "placeholder"
	if cfg.InstitutionLogo != nil {
		logo = fmt.Sprintf("%s %dx%d", cfg.InstitutionLogo.MIME(), cfg.InstitutionLogo.Width(), cfg.InstitutionLogo.Height())
	}
	printKeyValue("Logo", logo)
	printKeyValue("Layout", fmt.Sprintf("%d per page · %d × %d lines", cfg.EntriesPerPage, cfg.RepeatCount, cfg.LineCount))
	if skipped := total - stats.Entries; skipped > 0 {
		printKeyValue("Skipped", plural(skipped, "blank entry"))
	}
	printNewline()

	if doc.IsEmpty() {
		printWarning("No words to trace")
		return
	}
	fmt.Println(pageTable(doc).Render())
	printNewline()
	printStats(stats, false)
}

// pageTable lists every page with its words and visuals.
func pageTable(doc worksheet.Document) *table.Table {
	rows := make([][]string, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		words := make([]string, len(p.Blocks))
		visuals := make([]string, len(p.Blocks))
		for i, b := range p.Blocks {
			words[i] = b.Text
			if b.Visual.IsImage() {
				visuals[i] = "image"
			} else {
				visuals[i] = b.Visual.Glyph
			}
		}
		header := ""
		if p.Header != nil {
			header = iconSuccess
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Index + 1),
			strings.Join(words, ", "),
			strings.Join(visuals, " "),
			header,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Page", "Words", "Visuals", "Header").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}
