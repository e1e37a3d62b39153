package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	apperr "github.com/tichlinh-png/trace-worksheet/pkg/errors"
	"github.com/tichlinh-png/trace-worksheet/pkg/wordlist"
	"github.com/tichlinh-png/trace-worksheet/pkg/worksheet"
)

// Layout ranges offered by the editor. Files may hold any value the engine
// accepts; the editor's step keys keep within these.
const (
	editMinPerPage = 2
	editMaxPerPage = 3
	editMinRepeat  = 8
	editMaxRepeat  = 16
	editMinLines   = 3
	editMaxLines   = 6
)

var (
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	editErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	editHelpStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <worksheet>",
		Short: "Edit a worksheet's words and layout interactively",
		Long: `Edit a worksheet file in the terminal: add, rename and delete words, change
their emoji, and adjust the layout. A missing file starts from the sample.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := loggerFromContext(cmd.Context())

			ws, err := wordlist.Load(path)
			switch {
			case apperr.Is(err, apperr.ErrCodeFileNotFound):
				logger.Debug("starting from sample", "path", path)
				ws = wordlist.Sample()
			case err != nil:
				return err
			}

			m := newEditorModel(path, ws)
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}

			if em, ok := final.(editorModel); ok {
				switch {
				case em.dirty:
					printWarning("Quit without saving changes to %s", path)
				case em.saves > 0:
					printSuccess("Saved %s", plural(em.list.Len(), "word"))
					printFile(path)
				}
			}
			return nil
		},
	}
}

// =============================================================================
// editorModel - Interactive word list editor
// =============================================================================

type editMode int

const (
	modeBrowse editMode = iota
	modeText
	modeEmoji
)

// savedMsg reports the result of writing the worksheet file.
type savedMsg struct{ err error }

type editorModel struct {
	path string
	ws   *wordlist.Worksheet
	list *worksheet.List
	cfg  worksheet.Config

	cursor int
	mode   editMode
	input  []rune

	dirty       bool
	confirmQuit bool
	saves       int
	status      string
	failed      bool
}

func newEditorModel(path string, ws *wordlist.Worksheet) editorModel {
	m := editorModel{
		path: path,
		ws:   ws,
		list: worksheet.NewList(ws.Entries),
		cfg:  ws.Config,
	}
	if len(ws.Warnings) > 0 {
		m.setError(strings.Join(ws.Warnings, "; "))
	}
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		if msg.err != nil {
			m.setError("save failed: " + apperr.UserMessage(msg.err))
			return m, nil
		}
		m.dirty = false
		m.saves++
		m.setStatus("Saved " + m.path)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode != modeBrowse {
			return m.updateInput(msg), nil
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m editorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.confirmQuit = false
	}

	switch key {
	case "q", "esc":
		if m.dirty && !m.confirmQuit {
			m.confirmQuit = true
			m.setError("Unsaved changes: press q again to quit, s to save")
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.list.Len()-1 {
			m.cursor++
		}
	case "a":
		m.list.Add()
		m.cursor = m.list.Len() - 1
		m.dirty = true
		m.startInput(modeText, "")
	case "enter", "e":
		if e, ok := m.current(); ok {
			m.startInput(modeText, e.Text)
		}
	case "m":
		if e, ok := m.current(); ok {
			m.startInput(modeEmoji, e.Emoji)
		}
	case "d", "x", "delete":
		if e, ok := m.current(); ok {
			_ = m.list.Delete(e.ID)
			m.ws.SetImageSource(e.ID, "")
			m.cursor = min(m.cursor, max(m.list.Len()-1, 0))
			m.dirty = true
			m.setStatus(fmt.Sprintf("Deleted %q", e.Text))
		}
	case "p":
		m.step(&m.cfg.EntriesPerPage, 1, editMinPerPage, editMaxPerPage)
	case "P":
		m.step(&m.cfg.EntriesPerPage, -1, editMinPerPage, editMaxPerPage)
	case "r":
		m.step(&m.cfg.RepeatCount, 1, editMinRepeat, editMaxRepeat)
	case "R":
		m.step(&m.cfg.RepeatCount, -1, editMinRepeat, editMaxRepeat)
	case "l":
		m.step(&m.cfg.LineCount, 1, editMinLines, editMaxLines)
	case "L":
		m.step(&m.cfg.LineCount, -1, editMinLines, editMaxLines)
	case "s", "ctrl+s":
		return m, m.save()
	}
	return m, nil
}

func (m editorModel) updateInput(msg tea.KeyMsg) editorModel {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input = nil
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m
}

func (m *editorModel) startInput(mode editMode, value string) {
	m.mode = mode
	m.input = []rune(value)
	m.status = ""
}

func (m *editorModel) commitInput() {
	e, ok := m.current()
	if !ok {
		m.mode = modeBrowse
		return
	}
	value := string(m.input)

	var err error
	if m.mode == modeText {
		if err = apperr.ValidateText("word", value); err == nil {
			err = m.list.SetText(e.ID, value)
		}
	} else {
		if err = apperr.ValidateText("emoji", value); err == nil {
			err = m.list.SetEmoji(e.ID, value)
		}
	}
	if err != nil {
		m.setError(apperr.UserMessage(err))
		return
	}
	m.mode = modeBrowse
	m.input = nil
	m.dirty = true
}

// step moves a layout knob by delta, keeping it within [lo, hi].
func (m *editorModel) step(v *int, delta, lo, hi int) {
	next := max(lo, min(hi, *v+delta))
	if next != *v {
		*v = next
		m.dirty = true
	}
}

func (m editorModel) current() (worksheet.Entry, bool) {
	entries := m.list.Entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return worksheet.Entry{}, false
	}
	return entries[m.cursor], true
}

// save writes the edited worksheet in the background and reports back with
// a savedMsg.
func (m editorModel) save() tea.Cmd {
	m.ws.Entries = m.list.Entries()
	m.ws.Config = m.cfg
	ws, path := m.ws, m.path
	return func() tea.Msg {
		return savedMsg{err: wordlist.Save(ws, path)}
	}
}

func (m *editorModel) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *editorModel) setError(s string) {
	m.status = s
	m.failed = true
}

func (m editorModel) View() string {
	var b strings.Builder

	title := "Editing " + m.path
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")

	pages := "?"
	if doc, err := worksheet.Generate(m.list.Entries(), m.cfg); err == nil {
		pages = plural(len(doc.Pages), "page")
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d per page · %d × %d lines · %s",
		m.cfg.EntriesPerPage, m.cfg.RepeatCount, m.cfg.LineCount, pages)))
	b.WriteString("\n\n")

	b.WriteString(m.entryTable())
	b.WriteString("\n\n")

	switch m.mode {
	case modeText:
		b.WriteString("Word: " + string(m.input) + "▏\n")
	case modeEmoji:
		b.WriteString("Emoji: " + string(m.input) + "▏\n")
	}
	if m.status != "" {
		if m.failed {
			b.WriteString(editErrorStyle.Render(m.status))
		} else {
			b.WriteString(StyleDim.Render(m.status))
		}
		b.WriteString("\n")
	}

	if m.mode == modeBrowse {
		b.WriteString(editHelpStyle.Render("↑/↓ move  a add  e edit  m emoji  d delete  p/P per page  r/R repeat  l/L lines  s save  q quit"))
	} else {
		b.WriteString(editHelpStyle.Render("⏎ confirm  esc cancel"))
	}
	return b.String()
}

func (m editorModel) entryTable() string {
	entries := m.list.Entries()
	if len(entries) == 0 {
		return editHelpStyle.Render("  No words yet: press a to add one")
	}

	rows := make([][]string, len(entries))
	for i, e := range entries {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		image := ""
		if e.HasImage() {
			image = iconSuccess
		}
		rows[i] = []string{cursor, strconv.Itoa(e.ID), e.Emoji, e.Text, image}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Emoji", "Word", "Image").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.cursor:
				return editSelectedStyle
			case row < len(entries) && entries[row].IsBlank():
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
