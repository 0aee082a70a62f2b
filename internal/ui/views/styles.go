package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Label          lipgloss.Style
	LabelFocused   lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	Outlined       lipgloss.Style
	Placeholder    lipgloss.Style
	Chip           lipgloss.Style
	ChipRemove     lipgloss.Style
	Panel          lipgloss.Style
	PanelOutlined  lipgloss.Style
	Search         lipgloss.Style
	SearchIcon     lipgloss.Style
	Option         lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	Highlight      lipgloss.Style
	Empty          lipgloss.Style
	Scroll         lipgloss.Style
	InfoBox        lipgloss.Style
	StatusError    lipgloss.Style
	StatusSuccess  lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Dim:          lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help:    lipgloss.NewStyle().Faint(true),
		Trigger: lipgloss.NewStyle().Background(lipgloss.Color("236")).Padding(0, 1),
		TriggerFocused: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		Outlined: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Chip: lipgloss.NewStyle().
			Background(lipgloss.Color("24")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1),
		ChipRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Panel: lipgloss.NewStyle().
			Background(lipgloss.Color("235")),
		PanelOutlined: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, true, true).
			BorderForeground(lipgloss.Color("241")),
		Search:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		SearchIcon:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Option:         lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1),
		OptionCursor:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Padding(0, 1),
		OptionSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Padding(0, 1),
		Highlight:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Empty:          lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(0, 1),
		Scroll:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
