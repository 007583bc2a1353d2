package build

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrei-cloud/go_segop/pkg/payload"
)

type option struct {
	value       string
	description string
}

type fieldConfig struct {
	name        string
	description string
	options     []option
	selected    int
}

type metadataModel struct {
	meta         payload.Metadata
	currentField int
	fields       []fieldConfig
	done         bool
	cancelled    bool
}

const noneOption = "(none)"

// newMetadataModel creates a new TUI model for choosing the BUDS tier and kind.
// Values already given on the command line are preselected.
func newMetadataModel(initial payload.Metadata) metadataModel {
	tiers := []option{{noneOption, "No tier marker"}}
	for _, name := range payload.TierNames() {
		tiers = append(tiers, option{name, payload.TierDescription(name)})
	}

	kinds := []option{{noneOption, "No data-kind marker"}}
	for _, name := range payload.KindNames() {
		kinds = append(kinds, option{name, payload.KindDescription(name)})
	}

	fields := []fieldConfig{
		{
			name:        "Tier",
			description: "BUDS tier marker (record 0xF0)",
			options:     tiers,
			selected:    indexOf(tiers, initial.Tier),
		},
		{
			name:        "Kind",
			description: "BUDS data-kind marker (record 0xF1)",
			options:     kinds,
			selected:    indexOf(kinds, initial.Kind),
		},
	}

	return metadataModel{meta: initial, fields: fields}
}

func indexOf(options []option, value string) int {
	for i, o := range options {
		if o.value == value {
			return i
		}
	}

	return 0
}

// Init initializes the model.
func (m metadataModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m metadataModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	currentField := &m.fields[m.currentField]

	switch keyMsg.String() {
	case "ctrl+c", "q":
		m.cancelled = true

		return m, tea.Quit
	case "enter":
		m.updateMetadataFromSelection()
		if m.currentField >= len(m.fields)-1 {
			m.done = true

			return m, tea.Quit
		}
		m.currentField++
	case "tab":
		if m.currentField < len(m.fields)-1 {
			m.currentField++
		}
	case "shift+tab":
		if m.currentField > 0 {
			m.currentField--
		}
	case "up", "k":
		if currentField.selected > 0 {
			currentField.selected--
		}
	case "down", "j":
		if currentField.selected < len(currentField.options)-1 {
			currentField.selected++
		}
	}

	return m, nil
}

// updateMetadataFromSelection copies the selected options into meta.
func (m *metadataModel) updateMetadataFromSelection() {
	for _, field := range m.fields {
		value := field.options[field.selected].value
		if value == noneOption {
			value = ""
		}
		switch field.name {
		case "Tier":
			m.meta.Tier = value
		case "Kind":
			m.meta.Kind = value
		}
	}
}

// View renders the current state of the model.
func (m metadataModel) View() string {
	if m.done {
		return "Payload metadata selected.\n"
	}

	if m.cancelled {
		return "Operation cancelled.\n"
	}

	var s strings.Builder
	s.WriteString("Select BUDS Metadata\n")
	s.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&s, "Field %d of %d\n\n", m.currentField+1, len(m.fields))

	currentField := m.fields[m.currentField]
	fmt.Fprintf(&s, "▶ %s: %s\n\n", currentField.name, currentField.description)

	for j, o := range currentField.options {
		selector := "  ○ "
		if j == currentField.selected {
			selector = "  ● "
		}
		fmt.Fprintf(&s, "%s%s - %s\n", selector, o.value, o.description)
	}
	s.WriteString("\n")

	if m.currentField > 0 {
		s.WriteString("Completed fields:\n")
		for i := 0; i < m.currentField; i++ {
			field := m.fields[i]
			fmt.Fprintf(&s, "  %s: %s\n", field.name, field.options[field.selected].value)
		}
		s.WriteString("\n")
	}

	s.WriteString("Navigation:\n")
	s.WriteString("  ↑/↓ or j/k: Select option\n")
	s.WriteString("  Tab/Shift+Tab: Next/Previous field\n")
	s.WriteString("  Enter: Confirm and continue\n")
	s.WriteString("  q or Ctrl+C: Quit\n")

	return s.String()
}

// runMetadataTUI starts the interactive picker and returns the chosen metadata.
func runMetadataTUI(initial payload.Metadata, opts ...tea.ProgramOption) (payload.Metadata, bool, error) {
	p := tea.NewProgram(newMetadataModel(initial), opts...)
	finalModel, err := p.Run()
	if err != nil {
		return payload.Metadata{}, false, err
	}

	m, ok := finalModel.(metadataModel)
	if !ok {
		return payload.Metadata{}, false, fmt.Errorf("unexpected model type %T", finalModel)
	}
	m.updateMetadataFromSelection() // Ensure final state is captured.

	return m.meta, !m.cancelled, nil
}
