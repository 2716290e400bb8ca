package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/jmcdonald/lowercase/internal/adapters/tuisvc"
	"github.com/jmcdonald/lowercase/internal/config"
	"github.com/jmcdonald/lowercase/internal/ports"
)

// View represents the current view state
type View int

const (
	PlanView   View = iota // Dry-run plan, nothing applied yet
	ResultView             // Outcomes of the applied run
)

// Model is the main TUI model
type Model struct {
	svc      ports.TUIService
	config   config.Config
	view     View
	width    int
	height   int
	quitting bool

	// Plan view
	plan []ports.TUIRenameItem

	// Result view
	result *ports.TUIApplyResult

	// Indices into the current list that match the filter, in display order
	visible []int
	cursor  int

	// Filter input
	filtering bool
	filter    string

	// Status message
	statusMsg string
	statusErr bool
}

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Apply   key.Binding
	Refresh key.Binding
	Filter  key.Binding
	Back    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Apply: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "apply"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-plan"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type planMsg struct {
	items []ports.TUIRenameItem
	err   error
}

type applyMsg struct {
	result ports.TUIApplyResult
	err    error
}

// NewModel creates a TUI model for an already resolved configuration.
func NewModel(cfg config.Config, svc ports.TUIService) *Model {
	return &Model{
		svc:    svc,
		config: cfg,
		view:   PlanView,
	}
}

// Init loads the plan
func (m *Model) Init() tea.Cmd {
	return m.loadPlan()
}

func (m *Model) loadPlan() tea.Cmd {
	return func() tea.Msg {
		items, err := m.svc.Plan(m.config)
		return planMsg{items: items, err: err}
	}
}

func (m *Model) applyPlan() tea.Cmd {
	return func() tea.Msg {
		result, err := m.svc.Apply(m.config)
		return applyMsg{result: result, err: err}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case planMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Planning failed: %v", msg.err)
			m.statusErr = true
			return m, nil
		}
		m.plan = msg.items
		m.view = PlanView
		m.result = nil
		m.refilter()
		return m, nil

	case applyMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Apply failed: %v", msg.err)
			m.statusErr = true
			return m, nil
		}
		m.result = &msg.result
		m.view = ResultView
		m.filter = ""
		m.refilter()
		m.statusMsg = fmt.Sprintf("✓ %d renamed, %d skipped, %d errors",
			msg.result.Renamed, msg.result.Collisions, msg.result.Failed)
		m.statusErr = msg.result.Failed > 0
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			m.updateFilter(msg)
			return m, nil
		}

		// Clear status on any key
		m.statusMsg = ""
		m.statusErr = false

		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			m.moveCursor(-1)

		case key.Matches(msg, keys.Down):
			m.moveCursor(1)

		case key.Matches(msg, keys.Filter):
			m.filtering = true

		case key.Matches(msg, keys.Back):
			if m.filter != "" {
				m.filter = ""
				m.refilter()
			} else if m.view == ResultView {
				return m, m.loadPlan()
			}

		case key.Matches(msg, keys.Refresh):
			return m, m.loadPlan()

		case key.Matches(msg, keys.Apply):
			if m.view != PlanView {
				break
			}
			if m.config.DryRun {
				m.statusMsg = "Dry run: apply is disabled"
				m.statusErr = true
				break
			}
			if m.pending() == 0 {
				m.statusMsg = "Nothing to rename"
				break
			}
			return m, m.applyPlan()
		}
	}

	return m, nil
}

// updateFilter edits the filter while the prompt is open.
func (m *Model) updateFilter(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
	case tea.KeyBackspace:
		if r := []rune(m.filter); len(r) > 0 {
			m.filter = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
	case tea.KeyCtrlC:
		m.filtering = false
	}
	m.refilter()
}

// items returns the list shown by the current view.
func (m *Model) items() []ports.TUIRenameItem {
	if m.view == ResultView && m.result != nil {
		return m.result.Items
	}
	return m.plan
}

// refilter recomputes visible rows; fuzzy matches are ordered by score.
func (m *Model) refilter() {
	items := m.items()
	m.visible = m.visible[:0]

	if m.filter == "" {
		for i := range items {
			m.visible = append(m.visible, i)
		}
	} else {
		sources := make([]string, len(items))
		for i, item := range items {
			sources[i] = displayPath(item)
		}
		for _, match := range fuzzy.Find(m.filter, sources) {
			m.visible = append(m.visible, match.Index)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// pending counts plan entries that applying would try to rename.
func (m *Model) pending() int {
	n := 0
	for _, item := range m.plan {
		if item.Outcome == "simulated" {
			n++
		}
	}
	return n
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf(" lowercase: %s ", m.config.TargetDir)
	if m.view == ResultView {
		title = fmt.Sprintf(" lowercase: %s (applied) ", m.config.TargetDir)
	} else if m.config.DryRun {
		title = fmt.Sprintf(" lowercase: %s (dry run) ", m.config.TargetDir)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  Everything is already lowercase"))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-14s %s", "STATUS", "ENTRY")
		b.WriteString(dimStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Repeat("─", 60)))
		b.WriteString("\n")

		visibleHeight := m.height - 12
		if visibleHeight < 5 {
			visibleHeight = 5
		}

		start := 0
		if m.cursor >= visibleHeight {
			start = m.cursor - visibleHeight + 1
		}

		for row := start; row < len(m.visible) && row < start+visibleHeight; row++ {
			item := items[m.visible[row]]
			cursor := "  "
			style := normalStyle
			if row == m.cursor {
				cursor = "▸ "
				style = selectedStyle
			}

			line := fmt.Sprintf("%s%s %s → %s",
				cursor,
				statusBadge(item.Outcome),
				style.Render(truncate(displayPath(item), 48)),
				renderName(item.OldName, item.NewName))
			if item.Error != "" {
				line += " " + errorBadge.Render(item.Error)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}

		if len(m.visible) == 0 {
			b.WriteString(dimStyle.Render("  No entries match the filter"))
			b.WriteString("\n")
		}
	}

	// Filter
	b.WriteString("\n")
	if m.filtering || m.filter != "" {
		b.WriteString(filterStyle.Render("/" + m.filter))
		if m.filtering {
			b.WriteString("█")
		}
	}
	b.WriteString("\n")

	// Status
	if m.statusMsg != "" {
		if m.statusErr {
			b.WriteString(errorBadge.Render(m.statusMsg))
		} else {
			b.WriteString(successBadge.Render(m.statusMsg))
		}
	} else if m.view == PlanView && len(items) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d to rename", m.pending())))
	}
	b.WriteString("\n")

	// Help
	help := "[↑/↓] navigate  [/] filter  [a] apply  [r] re-plan  [q] quit"
	if m.view == ResultView {
		help = "[↑/↓] navigate  [/] filter  [esc] back to plan  [q] quit"
	}
	b.WriteString(helpStyle.Render(help))

	return appStyle.Render(b.String())
}

// statusBadge renders a fixed-width outcome label.
func statusBadge(outcome string) string {
	label := fmt.Sprintf("%-14s", outcome)
	switch outcome {
	case "renamed":
		return successBadge.Render(label)
	case "simulated":
		return dimStyle.Render(fmt.Sprintf("%-14s", "would rename"))
	case "skipped-collision":
		return warningBadge.Render(fmt.Sprintf("%-14s", "exists"))
	case "failed":
		return errorBadge.Render(label)
	default:
		return label
	}
}

// displayPath joins the item's directory and old name.
func displayPath(item ports.TUIRenameItem) string {
	if item.Path == "" || item.Path == "." {
		return item.OldName
	}
	return path.Join(item.Path, item.OldName)
}

// Run starts the TUI
func Run(args []string) error {
	svc := tuisvc.New()
	cfg, err := svc.LoadConfig(args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewModel(cfg, svc), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// Helper functions
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
