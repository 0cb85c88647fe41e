// Package tui hosts the interactive check-in review screen: the user
// attests which of yesterday's dailies were actually done before the
// rollover consequences land.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lifeforge/internal/engine"
	"lifeforge/internal/game"
	"lifeforge/internal/ui"
)

type reviewModel struct {
	ctx   context.Context
	store *game.Store

	pending  []engine.Routine
	checked  map[string]bool
	selected int

	result  *game.ReviewResult
	syncErr error
	err     error
	done    bool
}

type resolvedMsg struct {
	result *game.ReviewResult
	// syncWarn is a non-fatal remote failure; the local state resolved.
	syncWarn error
	err      error
}

func newReviewModel(ctx context.Context, store *game.Store) reviewModel {
	return reviewModel{
		ctx:     ctx,
		store:   store,
		pending: store.PendingReview(),
		checked: map[string]bool{},
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		var confirmed []string
		for id, ok := range m.checked {
			if ok {
				confirmed = append(confirmed, id)
			}
		}
		res, err := m.store.ResolvePendingDailies(m.ctx, confirmed)
		var syncErr game.SyncError
		if errors.As(err, &syncErr) {
			return resolvedMsg{result: res, syncWarn: err}
		}
		return resolvedMsg{result: res, err: err}
	}
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolvedMsg:
		m.result = msg.result
		m.syncErr = msg.syncWarn
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.pending)-1 {
				m.selected++
			}
			return m, nil
		case " ", "x":
			if m.selected >= 0 && m.selected < len(m.pending) {
				id := m.pending[m.selected].ID
				m.checked[id] = !m.checked[id]
			}
			return m, nil
		case "enter":
			return m, m.resolveCmd()
		}
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconSun, "Daily check-in") + "\n")
	b.WriteString(ui.Muted.Render("Mark the dailies you actually finished yesterday. Unmarked ones cost HP and XP.") + "\n\n")

	for i, r := range m.pending {
		mark := "[ ]"
		if m.checked[r.ID] {
			mark = "[" + ui.Good.Render("x") + "]"
		}
		line := fmt.Sprintf("%s %s %s", mark, r.Title, ui.Muted.Render("("+string(r.Difficulty)+")"))
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + ui.Muted.Render("space: toggle · enter: confirm · q: quit without resolving") + "\n")
	return ui.Panel.Render(b.String())
}

// Resolution is what the review screen produced.
type Resolution struct {
	// Result is nil when the user quit without resolving.
	Result *game.ReviewResult
	// SyncWarn is a non-fatal remote failure; the local state resolved.
	SyncWarn error
}

// RunReview drives the interactive review.
func RunReview(ctx context.Context, store *game.Store, out io.Writer) (Resolution, error) {
	m := newReviewModel(ctx, store)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Resolution{}, fmt.Errorf("run review: %w", err)
	}
	fm, ok := final.(reviewModel)
	if !ok {
		return Resolution{}, fmt.Errorf("unexpected model type")
	}
	if fm.err != nil {
		return Resolution{}, fm.err
	}
	return Resolution{Result: fm.result, SyncWarn: fm.syncErr}, nil
}
