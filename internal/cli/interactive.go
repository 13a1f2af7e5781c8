package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adsmithhq/adsmith/internal/copygen"
	"github.com/adsmithhq/adsmith/internal/tts"
)

// menuItem represents a single configurable option in the TUI.
type menuItem struct {
	label    string
	value    string
	options  []menuOption
	required bool
	editing  bool
	cursor   int // cursor within options when editing
}

type menuOption struct {
	label string
	value string
}

// menuState tracks which phase the TUI is in.
type menuState int

const (
	stateMenu menuState = iota
	stateEditing
	stateTypePicker
)

// Fixed item order in the menu.
const (
	idxCompany = iota
	idxDescription
	idxAudience
	idxTone
	idxTypes
	idxModel
	idxSpeak
	idxTTS
	idxVoice
	idxOutputDir
	idxGenerate
)

// tuiModel is the Bubble Tea model for the interactive menu.
type tuiModel struct {
	items      []menuItem
	cursor     int
	state      menuState
	width      int
	err        error
	confirmed  bool
	cancelled  bool
	types      map[string]bool // for the multi-select type picker
	typeCursor int
}

// style constants
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1)

	headerBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 2)

	menuLabelStyle = lipgloss.NewStyle().
			Width(16).
			Align(lipgloss.Right).
			MarginRight(2)

	menuValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	menuValueDimStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	requiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	selectedOptionStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(lipgloss.Color("#04B575")).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 2)

	buttonDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Background(lipgloss.Color("#333333")).
			Padding(0, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#555555"))
)

func toneOptions() []menuOption {
	return []menuOption{
		{"Warm", "warm"},
		{"Professional", "professional"},
		{"Playful", "playful"},
		{"Urgent", "urgent"},
		{"Bold", "bold"},
	}
}

func modelOptions() []menuOption {
	return []menuOption{
		{"Claude Haiku (fast)", "haiku"},
		{"Claude Sonnet (best)", "sonnet"},
		{"Nova Lite (Bedrock)", "nova-lite"},
	}
}

func ttsOptions() []menuOption {
	return []menuOption{
		{"Gemini (24 kHz)", "gemini"},
		{"Google Cloud TTS (24 kHz)", "google"},
		{"AWS Polly (16 kHz)", "polly"},
	}
}

func speakOptions() []menuOption {
	return []menuOption{
		{"No", "false"},
		{"Yes, synthesize radio scripts", "true"},
	}
}

func voiceOptions() []menuOption {
	var opts []menuOption
	for _, v := range tts.Catalog() {
		opts = append(opts, menuOption{
			label: fmt.Sprintf("%s (%s) %s", v.Name, v.Gender, v.Description),
			value: v.Name,
		})
	}
	return opts
}

func typePickerOptions() []menuOption {
	var opts []menuOption
	for _, slug := range copygen.Slugs() {
		opts = append(opts, menuOption{label: slug, value: slug})
	}
	return opts
}

func buildMenuItems() []menuItem {
	return []menuItem{
		idxCompany:     {label: "Company", value: flagCompany, required: true},
		idxDescription: {label: "Description", value: flagDescription, required: true},
		idxAudience:    {label: "Audience", value: flagAudience},
		idxTone:        {label: "Tone", value: flagTone, options: toneOptions()},
		idxTypes:       {label: "Content types", value: flagTypes},
		idxModel:       {label: "Model", value: flagModel, options: modelOptions()},
		idxSpeak:       {label: "Speech", value: fmt.Sprintf("%v", flagSpeak), options: speakOptions()},
		idxTTS:         {label: "TTS provider", value: flagTTS, options: ttsOptions()},
		idxVoice:       {label: "Voice", value: flagVoice, options: voiceOptions()},
		idxOutputDir:   {label: "Output dir", value: flagOutputDir},
		idxGenerate:    {label: "Generate"},
	}
}

func initialTUIModel() tuiModel {
	selected := map[string]bool{}
	for _, slug := range strings.Split(flagTypes, ",") {
		selected[strings.TrimSpace(slug)] = true
	}
	return tuiModel{
		items: buildMenuItems(),
		types: selected,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) isTextInput(idx int) bool {
	return idx != idxGenerate && idx != idxTypes && len(m.items[idx].options) == 0
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.state {
		case stateMenu:
			return m.updateMenu(msg)
		case stateEditing:
			return m.updateEditing(msg)
		case stateTypePicker:
			return m.updateTypePicker(msg)
		}
	}
	return m, nil
}

func (m tuiModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter":
		switch m.cursor {
		case idxGenerate:
			if err := m.validate(); err != nil {
				m.err = err
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		case idxTypes:
			m.state = stateTypePicker
			m.typeCursor = 0
		default:
			m.err = nil
			m.state = stateEditing
			m.items[m.cursor].editing = true
			// Put the option cursor on the current value
			for j, opt := range m.items[m.cursor].options {
				if opt.value == m.items[m.cursor].value {
					m.items[m.cursor].cursor = j
					break
				}
			}
		}
	}
	return m, nil
}

func (m tuiModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item := &m.items[m.cursor]

	if m.isTextInput(m.cursor) {
		switch msg.String() {
		case "enter":
			item.editing = false
			m.state = stateMenu
		case "esc":
			item.editing = false
			m.state = stateMenu
		case "ctrl+u":
			item.value = ""
		case "backspace":
			if len(item.value) > 0 {
				item.value = item.value[:len(item.value)-1]
			}
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		default:
			if msg.Type == tea.KeyRunes || msg.String() == " " {
				item.value += string(msg.Runes)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		item.editing = false
		m.state = stateMenu
	case "up", "k":
		if item.cursor > 0 {
			item.cursor--
		}
	case "down", "j":
		if item.cursor < len(item.options)-1 {
			item.cursor++
		}
	case "enter":
		item.value = item.options[item.cursor].value
		item.editing = false
		m.state = stateMenu
	}
	return m, nil
}

func (m tuiModel) updateTypePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := typePickerOptions()
	switch msg.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		m.state = stateMenu
	case "up", "k":
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case "down", "j":
		if m.typeCursor < len(opts)-1 {
			m.typeCursor++
		}
	case " ":
		slug := opts[m.typeCursor].value
		m.types[slug] = !m.types[slug]
	case "enter":
		var picked []string
		for _, opt := range opts {
			if m.types[opt.value] {
				picked = append(picked, opt.value)
			}
		}
		m.items[idxTypes].value = strings.Join(picked, ",")
		m.state = stateMenu
	}
	return m, nil
}

func (m tuiModel) validate() error {
	if strings.TrimSpace(m.items[idxCompany].value) == "" {
		return fmt.Errorf("company is required")
	}
	if strings.TrimSpace(m.items[idxDescription].value) == "" {
		return fmt.Errorf("description is required")
	}
	if m.items[idxTypes].value == "" {
		return fmt.Errorf("pick at least one content type")
	}
	return nil
}

func (m tuiModel) View() string {
	var b strings.Builder

	title := titleStyle.Render("Adsmith")
	b.WriteString(headerBorder.Render(title))
	b.WriteString("\n")

	for i, item := range m.items {
		isActive := m.cursor == i

		if i == idxGenerate {
			b.WriteString("\n")
			if isActive {
				b.WriteString("  " + buttonStyle.Render(" Generate "))
			} else {
				b.WriteString("  " + buttonDimStyle.Render(" Generate "))
			}
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		if isActive {
			cursor = cursorStyle.Render("> ")
		}

		label := item.label
		if item.required {
			label = label + requiredStyle.Render("*")
		}
		renderedLabel := menuLabelStyle.Render(label)

		var renderedValue string
		switch {
		case item.editing && m.isTextInput(i):
			renderedValue = menuValueStyle.Render(item.value + "_")
		case item.value == "":
			placeholder := "(not set)"
			switch i {
			case idxAudience:
				placeholder = "(optional — who the copy speaks to)"
			case idxVoice:
				placeholder = fmt.Sprintf("(default %s)", tts.DefaultVoiceName)
			}
			renderedValue = menuValueDimStyle.Render(placeholder)
		default:
			displayVal := item.value
			for _, opt := range item.options {
				if opt.value == item.value {
					displayVal = opt.label
					break
				}
			}
			renderedValue = menuValueStyle.Render(displayVal)
		}

		b.WriteString(cursor + renderedLabel + " " + renderedValue + "\n")

		if item.editing && len(item.options) > 0 && !m.isTextInput(i) {
			for j, opt := range item.options {
				if j == item.cursor {
					b.WriteString(selectedOptionStyle.Render("> "+opt.label) + "\n")
				} else {
					b.WriteString(optionStyle.Render("  "+opt.label) + "\n")
				}
			}
		}
	}

	if m.state == stateTypePicker {
		b.WriteString("\n")
		for j, opt := range typePickerOptions() {
			checked := " "
			if m.types[opt.value] {
				checked = "x"
			}
			prefix := "  "
			if j == m.typeCursor {
				prefix = cursorStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("  %s[%s] %s\n", prefix, checked, opt.label))
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  Error: "+m.err.Error()) + "\n")
	}

	switch m.state {
	case stateMenu:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | enter to edit | q to quit"))
	case stateEditing:
		if m.isTextInput(m.cursor) {
			b.WriteString(helpStyle.Render("  type value | enter to confirm | esc to cancel | ctrl+u to clear"))
		} else {
			b.WriteString(helpStyle.Render("  j/k or arrows to pick | enter to select | esc to cancel"))
		}
	case stateTypePicker:
		b.WriteString(helpStyle.Render("  j/k or arrows to navigate | space to toggle | enter to confirm | esc to cancel"))
	}
	b.WriteString("\n")

	return b.String()
}

func runInteractiveSetup() error {
	m := initialTUIModel()

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tuiModel)
	if final.cancelled {
		return fmt.Errorf("cancelled")
	}
	if !final.confirmed {
		return fmt.Errorf("generation cancelled")
	}

	// Apply selections to flags
	flagCompany = final.items[idxCompany].value
	flagDescription = final.items[idxDescription].value
	flagAudience = final.items[idxAudience].value
	flagTone = final.items[idxTone].value
	flagTypes = final.items[idxTypes].value
	flagModel = final.items[idxModel].value
	flagSpeak = final.items[idxSpeak].value == "true"
	flagTTS = final.items[idxTTS].value
	flagVoice = final.items[idxVoice].value
	flagOutputDir = final.items[idxOutputDir].value

	return nil
}
