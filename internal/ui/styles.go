package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBase    = lipgloss.Color("#14211A")
	ColorSurface = lipgloss.Color("#1F3328")
	ColorMuted   = lipgloss.Color("#6F8A7A")
	ColorText    = lipgloss.Color("#DDEDE3")
	ColorAccent  = lipgloss.Color("#32B768")
	ColorWater   = lipgloss.Color("#3D7199")
	ColorHeading = lipgloss.Color("#F2F7F4")
	ColorRed     = lipgloss.Color("#E83F5B")
	ColorYellow  = lipgloss.Color("#F5C96B")
)

// Layout
var (
	BaseStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorBase)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	GreetingStyle = lipgloss.NewStyle().
			Foreground(ColorHeading).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)
)

// Navigation
var (
	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	TabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorSurface)

	TabStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorSurface).
			Padding(0, 2).
			MarginRight(1)

	ActiveChipStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorSurface).
			Bold(true).
			Padding(0, 2).
			MarginRight(1)
)

// Text
var (
	HeadingStyle = lipgloss.NewStyle().
			Foreground(ColorHeading).
			Bold(true)

	SubheadingStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Padding(0, 1)

	TipStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorWater).
			Padding(1, 2)

	SpotlightStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorWater).
			Bold(true).
			Padding(1, 2)
)

// Tables and forms
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				Background(ColorSurface)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorAccent).
				Padding(1, 2)
)

// Confirmation card
var (
	CardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(2, 6).
			Align(lipgloss.Center)

	ConfirmationEmojiStyle = lipgloss.NewStyle().
				MarginBottom(1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorHeading).
			Background(ColorAccent).
			Bold(true).
			Padding(0, 4).
			MarginTop(1)
)
