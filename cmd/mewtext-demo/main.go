package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aprillz/mewtext/textview"
)

type model struct {
	view   *textview.Model
	status lipgloss.Style
	height int
}

func newModel() model {
	return model{
		view: textview.New(textview.Config{
			Text: "Hello from mewtext.\n\nType to edit. Ctrl+Z undoes, Ctrl+Y redoes.\n" +
				"Alt+arrows jump words, Ctrl+A selects all.\nCtrl+C to quit.",
			WrapEnabled: true,
			Style:       textview.DefaultStyle(),
		}),
		status: lipgloss.NewStyle().Faint(true),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.view.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.height <= 0 {
		return ""
	}
	ctl := m.view.Controller()
	status := fmt.Sprintf("caret %d  len %d  undo:%v", ctl.Caret(), m.view.Buffer().Len(), ctl.CanUndo())
	return m.view.View() + "\n" + m.status.Render(status)
}

func main() {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	p := tea.NewProgram(newModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
