package tui

import (
	"fmt"
	"strings"

	"github.com/OndraMix/Wiki/core/reconcile"
)

const progressWidth = 40

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render("Failed to start: "+m.err.Error()) + "\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("WikiCheck"))
	b.WriteString("\n")

	// Progress
	b.WriteString(progressBar(m.fraction))
	b.WriteString("  ")
	b.WriteString(infoStyle.Render(m.status))
	b.WriteString("\n\n")

	// Counters
	counters := fmt.Sprintf("%s  %s  %s",
		okStyle.Render(fmt.Sprintf("OK: %d", m.counts.OK)),
		errorStyle.Render(fmt.Sprintf("Errors: %d", m.counts.Errors)),
		warnStyle.Render(fmt.Sprintf("Missing: %d", m.counts.Missing)),
	)
	b.WriteString(counters)
	b.WriteString("\n\n")

	// Recent results
	for _, r := range m.results {
		b.WriteString(renderResult(r))
	}

	// Logs
	if len(m.logs) > 0 {
		b.WriteString("\n")
		for _, line := range m.logs {
			b.WriteString(infoStyle.Render("! " + line))
			b.WriteString("\n")
		}
	}

	// Footer
	b.WriteString("\n")
	if m.summary != nil {
		box := fmt.Sprintf("OK: %d  Errors: %d  Missing: %d", m.summary.OK, m.summary.Errors, m.summary.Missing)
		if m.summary.Stopped {
			box += "  (stopped)"
		}
		b.WriteString(summaryStyle.Render(box))
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("Press 'q' to exit"))
	} else {
		b.WriteString(infoStyle.Render("Press 'q' to stop"))
	}
	b.WriteString("\n")

	return b.String()
}

func renderResult(r reconcile.ArticleResult) string {
	var b strings.Builder
	switch r.Class {
	case reconcile.ClassOK:
		b.WriteString(okStyle.Render("  " + r.Header))
	case reconcile.ClassMissing:
		b.WriteString(warnStyle.Render("? " + r.Header))
	case reconcile.ClassError:
		b.WriteString(errorStyle.Render("x " + r.Header))
		for _, mm := range r.Mismatches {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("    %s (%s): %q vs %q", mm.Field, mm.Edition, mm.Source, mm.Target)))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * progressWidth)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	return okStyle.Render(bar) + fmt.Sprintf(" %3.0f%%", fraction*100)
}
