package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OndraMix/Wiki/core/reconcile"
)

const (
	pollInterval = 100 * time.Millisecond

	// How many recent results and log lines the view keeps.
	resultWindow = 10
	logWindow    = 5
)

// tickMsg triggers a queue drain.
type tickMsg time.Time

// startedMsg reports the outcome of launching the worker.
type startedMsg struct{ err error }

// Model is the Bubble Tea state of one check run.
type Model struct {
	session *reconcile.Session
	titles  []string

	fraction float64
	status   string
	counts   reconcile.Summary
	results  []reconcile.ArticleResult
	logs     []string

	summary  *reconcile.Summary
	stopping bool
	err      error
}

// NewModel creates a model driving the given session over the titles. The
// session must not have been started yet.
func NewModel(session *reconcile.Session, titles []string) Model {
	return Model{
		session: session,
		titles:  titles,
		status:  "Starting...",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startRun(), tick())
}

func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.session.Start(context.Background(), m.titles)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
