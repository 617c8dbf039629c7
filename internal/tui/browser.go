package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwhite/hw/internal/assignment"
	"github.com/mwhite/hw/internal/ui"
)

// Action represents a mutation requested from the browser, applied by the
// caller after the program exits.
type Action struct {
	Type string // "toggle", "delete"
	ID   int
}

// Browser is a full-screen bubbletea model for browsing assignments.
type Browser struct {
	items    []assignment.Assignment
	cursor   int
	filter   string
	filtered []assignment.Assignment
	mode     browserMode
	ref      time.Time

	width  int
	height int

	// Actions accumulates mutations to apply after quitting.
	Actions []Action

	quitting bool
}

type browserMode int

const (
	modeNormal browserMode = iota
	modeFilter
)

// NewBrowser creates a Browser over the given assignments.
// ref is the reference date for due-date annotations.
func NewBrowser(items []assignment.Assignment, ref time.Time) *Browser {
	b := &Browser{
		items:  items,
		ref:    ref,
		width:  80,
		height: 24,
	}
	b.applyFilter()
	return b
}

// Run launches the interactive browser. Returns actions for the caller to
// apply.
func Run(items []assignment.Assignment, ref time.Time) ([]Action, error) {
	b := NewBrowser(items, ref)
	prog := tea.NewProgram(b, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("assignment browser: %w", err)
	}
	final := result.(*Browser)
	return final.Actions, nil
}

func (b *Browser) Init() tea.Cmd {
	return nil
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		return b, nil
	case tea.KeyMsg:
		if b.mode == modeFilter {
			return b.handleFilterKey(msg)
		}
		return b.handleNormalKey(msg)
	}
	return b, nil
}

func (b *Browser) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		b.quitting = true
		return b, tea.Quit

	case "j", "down":
		if b.cursor < len(b.filtered)-1 {
			b.cursor++
		}

	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
		}

	case "g":
		b.cursor = 0

	case "G":
		if len(b.filtered) > 0 {
			b.cursor = len(b.filtered) - 1
		}

	case "x", " ", "enter":
		if len(b.filtered) > 0 {
			a := b.filtered[b.cursor]
			b.Actions = append(b.Actions, Action{Type: "toggle", ID: a.ID})
			// Toggle locally for immediate feedback.
			for i, item := range b.items {
				if item.ID == a.ID {
					b.items[i].Done = !b.items[i].Done
					break
				}
			}
			b.applyFilter()
			b.clampCursor()
		}

	case "d":
		if len(b.filtered) > 0 {
			a := b.filtered[b.cursor]
			b.Actions = append(b.Actions, Action{Type: "delete", ID: a.ID})
			for i, item := range b.items {
				if item.ID == a.ID {
					b.items = append(b.items[:i], b.items[i+1:]...)
					break
				}
			}
			b.applyFilter()
			b.clampCursor()
		}

	case "/":
		b.mode = modeFilter
		b.filter = ""
		b.applyFilter()
		b.cursor = 0
	}

	return b, nil
}

func (b *Browser) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		b.mode = modeNormal
		b.filter = ""
		b.applyFilter()
		b.cursor = 0

	case "enter":
		b.mode = modeNormal

	case "backspace":
		if len(b.filter) > 0 {
			runes := []rune(b.filter)
			b.filter = string(runes[:len(runes)-1])
			b.applyFilter()
			b.cursor = 0
		}

	default:
		if len(msg.Runes) > 0 {
			b.filter += string(msg.Runes)
			b.applyFilter()
			b.cursor = 0
		}
	}
	return b, nil
}

func (b *Browser) clampCursor() {
	if b.cursor >= len(b.filtered) && b.cursor > 0 {
		b.cursor = len(b.filtered) - 1
	}
}

// applyFilter matches against title and subject so "mat" finds Math work.
func (b *Browser) applyFilter() {
	b.filtered = nil
	for _, a := range b.items {
		if b.filter == "" {
			b.filtered = append(b.filtered, a)
			continue
		}
		if ok, _ := FuzzyMatch(b.filter, a.Title+" "+a.Subject); ok {
			b.filtered = append(b.filtered, a)
		}
	}
}

func (b *Browser) View() string {
	var sb strings.Builder

	header := ui.Title.Render("  " + ui.IconBook + " Assignments")
	if b.filter != "" {
		header += ui.Muted.Render(fmt.Sprintf("  filter: %q", b.filter))
	}
	sb.WriteString(header + "\n\n")

	visHeight := b.height - 7 // header, input, status bar
	if visHeight < 3 {
		visHeight = 3
	}

	offset := 0
	if b.cursor >= visHeight {
		offset = b.cursor - visHeight + 1
	}

	if len(b.filtered) == 0 {
		if b.filter != "" {
			sb.WriteString("  " + ui.Muted.Render("No matches. Press esc to clear filter.") + "\n")
		} else {
			sb.WriteString("  " + ui.Muted.Render("No assignments. Add one with 'hw add'.") + "\n")
		}
	} else {
		end := offset + visHeight
		if end > len(b.filtered) {
			end = len(b.filtered)
		}
		for i := offset; i < end; i++ {
			sb.WriteString(b.renderItem(b.filtered[i], i == b.cursor) + "\n")
		}
	}

	sb.WriteString("\n")

	if b.mode == modeFilter {
		prompt := lipgloss.NewStyle().Foreground(ui.Violet).Bold(true).Render("/")
		sb.WriteString("  " + prompt + " " + b.filter + "█\n")
	} else {
		sb.WriteString("\n")
	}

	open := 0
	for _, a := range b.items {
		if !a.Done {
			open++
		}
	}
	sb.WriteString(ui.Muted.Render(fmt.Sprintf("  %d/%d shown %s %d open", len(b.filtered), len(b.items), ui.IconDot, open)) + "\n")

	var help string
	if b.mode == modeFilter {
		help = ui.Muted.Render("  esc clear · enter confirm")
	} else {
		help = ui.Muted.Render("  j/k move · x toggle · d delete · / filter · q quit")
	}
	sb.WriteString(help + "\n")

	return sb.String()
}

func (b *Browser) renderItem(a assignment.Assignment, selected bool) string {
	pointer := "  "
	titleStyle := lipgloss.NewStyle()

	if selected {
		pointer = ui.Accent.Render(ui.IconArrow + " ")
		titleStyle = lipgloss.NewStyle().Foreground(ui.Violet).Bold(true)
	}

	marker := " "
	if a.Done {
		marker = ui.Success.Render("✓")
	}

	id := ui.Muted.Render(fmt.Sprintf("#%-3d", a.ID))
	diff := assignment.DifficultyIcon(a.Difficulty)
	title := a.Title
	if a.Done {
		title = ui.Muted.Render(title)
	} else {
		title = titleStyle.Render(title)
	}

	line := fmt.Sprintf("  %s %s %s %s %s", pointer, marker, id, diff, title)

	if a.Subject != "" {
		line += ui.Muted.Render(" [" + a.Subject + "]")
	}

	if !a.Done {
		if days, err := assignment.DaysUntilDue(a.DueDate, b.ref); err == nil {
			switch {
			case days < 0:
				line += ui.Error.Render(fmt.Sprintf(" (overdue: %s)", a.DueDate))
			case days == 0:
				line += ui.Warning.Render(" (due today!)")
			case days == 1:
				line += ui.Warning.Render(" (due tomorrow)")
			default:
				line += ui.Muted.Render(fmt.Sprintf(" (due in %dd)", days))
			}
		}
	}

	if a.Scheduled {
		line += ui.Success.Render(" ▸exported")
	}

	return line
}
