// Package picker renders an interactive terminal list for choosing one
// candidate from a search result set.
package picker

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user dismisses the picker without
// choosing an item.
var ErrCancelled = errors.New("selection cancelled")

// Item is one selectable row. Title carries the primary label, Subtitle a
// dimmed second column, Detail an optional third.
type Item struct {
	Title    string
	Subtitle string
	Detail   string
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type model struct {
	heading string
	items   []Item
	cursor  int
	choice  int
	done    bool
}

func newModel(heading string, items []Item) model {
	return model{heading: heading, items: items, choice: -1}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		m.choice = m.cursor
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var sb strings.Builder
	if m.heading != "" {
		sb.WriteString(titleStyle.Render(m.heading))
		sb.WriteString("\n\n")
	}

	for i, item := range m.items {
		line := item.Title
		if item.Subtitle != "" {
			line += "  " + subtitleStyle.Render(item.Subtitle)
		}
		if item.Detail != "" {
			line += "  " + subtitleStyle.Render(item.Detail)
		}

		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("> "))
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString("  ")
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("up/down move, enter select, q cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// Run shows the picker and blocks until the user selects or cancels.
// Returns the index of the chosen item, or ErrCancelled.
func Run(heading string, items []Item, in io.Reader, out io.Writer) (int, error) {
	if len(items) == 0 {
		return 0, fmt.Errorf("no items to pick from")
	}

	program := tea.NewProgram(newModel(heading, items), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.choice < 0 {
		return 0, ErrCancelled
	}
	return m.choice, nil
}
