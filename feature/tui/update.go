package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/OndraMix/Wiki/core/reconcile"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case startedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.summary != nil {
			return m, tea.Quit
		}
		// Cooperative stop; the final summary still arrives on the queue.
		m.stopping = true
		m.status = "Stopping after the current article..."
		m.session.Stop()
	}
	return m, nil
}

// handleTick drains the event queue and folds the events into the view
// state. Ticking continues until the summary arrives so the final batch of
// events is never lost.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	for _, e := range m.session.Events().Drain() {
		switch e.Kind {
		case reconcile.EventLog:
			m.logs = appendBounded(m.logs, e.Message, logWindow)
		case reconcile.EventProgress:
			m.fraction = e.Fraction
			if !m.stopping {
				m.status = e.Message
			}
		case reconcile.EventResult:
			m.results = appendBounded(m.results, *e.Result, resultWindow)
			switch e.Result.Class {
			case reconcile.ClassOK:
				m.counts.OK++
			case reconcile.ClassError:
				m.counts.Errors++
			case reconcile.ClassMissing:
				m.counts.Missing++
			}
		case reconcile.EventDone:
			m.summary = e.Summary
			m.status = "Finished"
		}
	}

	if m.summary != nil {
		return m, nil
	}
	return m, tick()
}

func appendBounded[T any](s []T, v T, limit int) []T {
	s = append(s, v)
	if len(s) > limit {
		s = s[len(s)-limit:]
	}
	return s
}
