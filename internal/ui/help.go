package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Form", []helpEntry{
		{"Tab/Shift+Tab", "Move between fields"},
		{"Ctrl+U/Ctrl+D", "Scroll the form"},
		{"Ctrl+R", "Clear the focused field"},
		{"Ctrl+S", "Submit and print the values"},
		{"p", "Preview the current values"},
	}},
	{"Dropdown", []helpEntry{
		{"Enter/Space", "Open the focused dropdown"},
		{"↑/↓", "Move the cursor"},
		{"PgUp/PgDn", "Page up/down"},
		{"Home/End", "First/last option"},
		{"Enter", "Select the option under the cursor"},
		{"Esc", "Close the panel"},
		{"Typing", "Filter options when search is enabled"},
	}},
	{"Mouse", []helpEntry{
		{"Click trigger", "Open or close"},
		{"Click ×", "Remove a selected value"},
		{"Click option", "Select it"},
		{"Click outside", "Close the panel"},
		{"Wheel", "Scroll the panel or the form"},
	}},
	{"Other", []helpEntry{
		{"?", "Show this help"},
		{"q/Ctrl+C", "Quit without submitting"},
	}},
}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContentPlain generates help content with colors for pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("dropgrip Help"))
	help.WriteString("\n")

	for _, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, e := range section.entries {
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(e.keys), descStyle.Render(e.desc)))
		}
	}

	return strings.TrimSuffix(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
