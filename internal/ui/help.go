package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"plantmanager/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(keys KeyMap, screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderFormHelp(DefaultFormKeyMap(), width)
	}

	switch screen {
	case model.ScreenPlantSelect:
		return renderHelpLine(width,
			bindingHelp(keys.Down, keys.Up),
			bindingHelp(keys.PrevEnv, keys.NextEnv),
			helpKey(keys.Select.Help().Key, keys.Select.Help().Desc),
			helpKey(keys.Retry.Help().Key, keys.Retry.Help().Desc),
			helpKey(keys.MyPlants.Help().Key, keys.MyPlants.Help().Desc),
			helpKey(keys.Help.Help().Key, keys.Help.Help().Desc),
			helpKey(keys.Quit.Help().Key, keys.Quit.Help().Desc),
		)
	case model.ScreenMyPlants:
		return renderHelpLine(width,
			bindingHelp(keys.Down, keys.Up),
			helpKey(keys.Edit.Help().Key, keys.Edit.Help().Desc),
			helpKey(keys.Remove.Help().Key, keys.Remove.Help().Desc),
			helpKey("u/ctrl+r", "undo/redo"),
			helpKey(keys.PickPlant.Help().Key, keys.PickPlant.Help().Desc),
			helpKey(keys.Quit.Help().Key, keys.Quit.Help().Desc),
		)
	case model.ScreenConfirmation:
		return renderHelpLine(width,
			helpKey("enter", "continue"),
		)
	default:
		return renderHelpLine(width,
			bindingHelp(keys.Down, keys.Up),
			helpKey(keys.Quit.Help().Key, keys.Quit.Help().Desc),
		)
	}
}

func renderFormHelp(keys FormKeyMap, width int) string {
	return renderHelpLine(width,
		helpKey("hh:mm", "reminder time"),
		helpKey(keys.Save.Help().Key+"/enter", keys.Save.Help().Desc),
		helpKey(keys.Cancel.Help().Key, keys.Cancel.Help().Desc),
	)
}

// bindingHelp joins a pair of bindings under one entry, like "j/↓ k/↑".
func bindingHelp(a, b key.Binding) string {
	return helpKey(a.Help().Key+" "+b.Help().Key, a.Help().Desc+"/"+b.Help().Desc)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(width int, keys ...string) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(keys KeyMap, width, height int) string {
	content := lipgloss.NewStyle().
		Width(max(width-4, 0)).
		Height(max(height-6, 0)).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection(bindingItems(
			keys.Down, keys.Up, keys.HalfPageDown, keys.HalfPageUp, keys.Bottom,
		), helpItem{"gg", "top"}),
		titleSection("Pick a plant"),
		helpSection(bindingItems(
			keys.PrevEnv, keys.NextEnv, keys.Select, keys.Retry, keys.MyPlants,
		)),
		titleSection("My plants"),
		helpSection(bindingItems(
			keys.Edit, keys.Remove, keys.Confirm, keys.Undo, keys.Redo, keys.PickPlant,
		)),
		titleSection("Reminder form"),
		helpSection(bindingItems(
			DefaultFormKeyMap().Save, DefaultFormKeyMap().Cancel,
		)),
		titleSection("General"),
		helpSection(bindingItems(keys.Help, keys.Quit)),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func bindingItems(bindings ...key.Binding) []helpItem {
	items := make([]helpItem, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, helpItem{h.Key, h.Desc})
	}
	return items
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem, extra ...helpItem) string {
	var lines []string
	for _, item := range append(items, extra...) {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
