package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CheckboxOption represents a checkbox choice
type CheckboxOption struct {
	Label   string
	Value   string
	Checked bool
}

// CheckboxModel is a multi-select list that remembers the order in which
// options were ticked. Each ticked option shows its rank instead of an x.
type CheckboxModel struct {
	title     string
	options   []CheckboxOption
	ranked    []int // option indices, highest priority first
	cursor    int
	done      bool
	minSelect int
}

// NewCheckboxModel creates a checkbox selector. Options already checked
// are ranked in the order of priority, then in option order for any
// checked option priority does not name.
func NewCheckboxModel(title string, options []CheckboxOption, priority ...string) CheckboxModel {
	m := CheckboxModel{
		title:     title,
		options:   options,
		minSelect: 1,
	}

	for _, value := range priority {
		for i, opt := range options {
			if opt.Value == value && opt.Checked && !slices.Contains(m.ranked, i) {
				m.ranked = append(m.ranked, i)
			}
		}
	}
	for i, opt := range options {
		if opt.Checked && !slices.Contains(m.ranked, i) {
			m.ranked = append(m.ranked, i)
		}
	}
	return m
}

func (m CheckboxModel) Init() tea.Cmd {
	return nil
}

// toggle flips the option under the cursor; ticking ranks it last
func (m CheckboxModel) toggle() CheckboxModel {
	if len(m.options) == 0 {
		return m
	}

	// Copy so models returned earlier keep their own state
	options := slices.Clone(m.options)
	ranked := slices.Clone(m.ranked)

	opt := &options[m.cursor]
	opt.Checked = !opt.Checked
	if opt.Checked {
		ranked = append(ranked, m.cursor)
	} else {
		ranked = slices.DeleteFunc(ranked, func(i int) bool { return i == m.cursor })
	}

	m.options = options
	m.ranked = ranked
	return m
}

func (m CheckboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "x":
		m = m.toggle()
	case "enter":
		if len(m.ranked) >= m.minSelect {
			m.done = true
			return m, tea.Quit
		}
	case "q", "ctrl+c", "esc":
		m.done = false
		m.ranked = nil
		return m, tea.Quit
	}
	return m, nil
}

func (m CheckboxModel) rankOf(index int) int {
	return slices.Index(m.ranked, index) + 1
}

func (m CheckboxModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		box := "[ ]"
		style := uncheckedStyle
		if rank := m.rankOf(i); rank > 0 {
			box = fmt.Sprintf("[%d]", rank)
			style = checkedStyle
		}

		sb.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, box, opt.Label)))
		sb.WriteString("\n")
	}

	if len(m.ranked) < m.minSelect {
		fmt.Fprintf(&sb, "\n(select at least %d)\n", m.minSelect)
	} else {
		sb.WriteString("\n")
	}
	sb.WriteString("(space=toggle in priority order, enter=confirm, q=cancel)\n")

	return sb.String()
}

// Selected returns the ticked values, highest priority first
func (m CheckboxModel) Selected() []string {
	result := make([]string, 0, len(m.ranked))
	for _, i := range m.ranked {
		result = append(result, m.options[i].Value)
	}
	return result
}

// Cancelled returns true if the user cancelled
func (m CheckboxModel) Cancelled() bool {
	return !m.done
}

// RunCheckbox displays checkboxes and returns the ticked values in
// priority order, or nil when the user cancelled
func RunCheckbox(title string, options []CheckboxOption, priority ...string) ([]string, error) {
	p := tea.NewProgram(NewCheckboxModel(title, options, priority...))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(CheckboxModel)
	if result.Cancelled() {
		return nil, nil
	}
	return result.Selected(), nil
}
