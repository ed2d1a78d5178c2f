package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	ErrCancelled = errors.New("selection canceled")
	ErrNoItems   = errors.New("nothing to select")
)

const (
	selectorPageSize     = 10
	selectorChromeLines  = 4
	selectorDefaultWidth = 80
)

var (
	colorPrompt   = lipgloss.Color("9")
	colorAnswer   = lipgloss.Color("10")
	colorHelp     = lipgloss.Color("3")
	colorSelected = lipgloss.Color("229")
	colorMuted    = lipgloss.Color("241")
)

var (
	promptStyle     = lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)
	answerStyle     = lipgloss.NewStyle().Foreground(colorAnswer).Bold(true)
	selectorHelp    = lipgloss.NewStyle().Foreground(colorHelp)
	itemStyle       = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle   = lipgloss.NewStyle().Foreground(colorSelected).Bold(true)
	paginationStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

type selectItem struct {
	index int
	label string
}

func (i selectItem) FilterValue() string {
	return i.label
}

type selectDelegate struct{}

func (selectDelegate) Height() int                             { return 1 }
func (selectDelegate) Spacing() int                            { return 0 }
func (selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (selectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(selectItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.MaxWidth(m.Width()).Render("> "+it.label))
		return
	}
	fmt.Fprint(w, itemStyle.MaxWidth(m.Width()).Render(it.label))
}

type selectorModel struct {
	title    string
	list     list.Model
	choice   int
	answer   string
	canceled bool
}

func newSelectorModel(title string, labels []string) selectorModel {
	items := make([]list.Item, 0, len(labels))
	for i, label := range labels {
		items = append(items, selectItem{index: i, label: label})
	}

	lst := list.New(items, selectDelegate{}, selectorDefaultWidth, selectorPageSize+selectorChromeLines)
	lst.Title = "$ " + title
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(true)
	lst.DisableQuitKeybindings()
	lst.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	lst.Styles.Title = promptStyle
	lst.Styles.TitleBar = lipgloss.NewStyle().PaddingBottom(1)
	lst.Styles.HelpStyle = selectorHelp
	lst.Styles.PaginationStyle = paginationStyle

	m := selectorModel{title: title, list: lst, choice: -1}
	m.fitPage()
	return m
}

// fitPage grows or shrinks the list until exactly selectorPageSize rows fit.
// The list's chrome height depends on whether the paginator is visible, so a
// single SetHeight is not always enough.
func (m *selectorModel) fitPage() {
	height := selectorPageSize + selectorChromeLines
	for i := 0; i < 3; i++ {
		m.list.SetHeight(height)
		diff := selectorPageSize - m.list.Paginator.PerPage
		if diff == 0 {
			return
		}
		height += diff
	}
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.fitPage()
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				m.canceled = true
				return m, tea.Quit
			}
			break
		}
		switch msg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break
			}
			m.canceled = true
			return m, tea.Quit
		case "q", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(selectItem); ok {
				m.choice = item.index
				m.answer = item.label
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	switch {
	case m.choice >= 0:
		return fmt.Sprintf("%s %s %s\n", promptStyle.Render("$"), m.title, answerStyle.Render(m.answer))
	case m.canceled:
		return fmt.Sprintf("%s %s %s\n", promptStyle.Render("$"), m.title, selectorHelp.Render("<canceled>"))
	default:
		return m.list.View()
	}
}

type selectSettings struct {
	input  io.Reader
	output io.Writer
}

type SelectOption func(*selectSettings)

func WithInput(r io.Reader) SelectOption {
	return func(s *selectSettings) { s.input = r }
}

func WithOutput(w io.Writer) SelectOption {
	return func(s *selectSettings) { s.output = w }
}

// Select shows labels as a single-choice list and blocks until the user
// confirms or cancels. It returns the index of the chosen label.
func Select(ctx context.Context, title string, labels []string, opts ...SelectOption) (int, error) {
	if len(labels) == 0 {
		return -1, ErrNoItems
	}

	var settings selectSettings
	for _, opt := range opts {
		opt(&settings)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if settings.input != nil {
		programOpts = append(programOpts, tea.WithInput(settings.input))
	}
	if settings.output != nil {
		programOpts = append(programOpts, tea.WithOutput(settings.output))
	}

	program := tea.NewProgram(newSelectorModel(title, labels), programOpts...)
	result, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return -1, ErrCancelled
		}
		return -1, fmt.Errorf("selection prompt: %w", err)
	}

	finalModel, ok := result.(selectorModel)
	if !ok {
		return -1, errors.New("selection failed")
	}
	if finalModel.choice < 0 {
		return -1, ErrCancelled
	}
	return finalModel.choice, nil
}
