package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OndraMix/Wiki/core/wiki"
)

// stubClient is a func-field test double for wiki.Client. Unset fields fall
// back to benign defaults.
type stubClient struct {
	exists    func(edition, title string) (bool, error)
	fetch     func(edition, title string) (string, error)
	redirect  func(edition, title string) (string, error)
	sitelinks func(edition, title string) (map[string]string, error)
}

func (c *stubClient) Exists(_ context.Context, edition, title string) (bool, error) {
	if c.exists == nil {
		return true, nil
	}
	return c.exists(edition, title)
}

func (c *stubClient) Fetch(_ context.Context, edition, title string) (string, error) {
	if c.fetch == nil {
		return "", nil
	}
	return c.fetch(edition, title)
}

func (c *stubClient) RedirectTarget(_ context.Context, edition, title string) (string, error) {
	if c.redirect == nil {
		return "", nil
	}
	return c.redirect(edition, title)
}

func (c *stubClient) Sitelinks(_ context.Context, edition, title string) (map[string]string, error) {
	if c.sitelinks == nil {
		return nil, wiki.ErrNoEntity
	}
	return c.sitelinks(edition, title)
}

func (c *stubClient) SitelinksBatch(_ context.Context, _ string, _ []string) (map[string]map[string]string, error) {
	return nil, nil
}

const (
	csMarkup = `{{Infobox - chemická sloučenina
| číslo CAS = 7732-18-5
| hustota = 0,9982 g/cm³
}}`
	enMarkup = `{{Chembox
| CASNo = 7732-18-5
| Density = 0.9982 g/cm3
}}`
	deMarkup = `{{Infobox Chemikalie
| CAS = 7732-18-5
| Dichte = 998.2 kg/m³
}}`
)

func testSpec() *Spec {
	return &Spec{
		SourceEdition:   "cs",
		SourceTemplates: []string{"infobox - chemická sloučenina"},
		Targets: []Target{
			{Edition: "en", Templates: []string{"chembox"}},
			{Edition: "de", Templates: []string{"infobox chemikalie"}},
		},
		Fields: []FieldSpec{
			{
				Label:     "CAS",
				SourceKey: "číslo CAS",
				TargetKeys: map[string][]string{
					"en": {"CASNo"},
					"de": {"CAS"},
				},
				Kind: KindIdentifier,
			},
			{
				Label:     "Hustota",
				SourceKey: "hustota",
				TargetKeys: map[string][]string{
					"en": {"Density"},
					"de": {"Dichte"},
				},
				Kind: KindText,
			},
		},
		Config: map[string]FieldConfig{
			"CAS":     {Enabled: true, Mode: ModeStandard},
			"Hustota": {Enabled: true, Mode: ModeFirstNumeric, Tolerance: 0.5, SmartUnits: true},
		},
	}
}

// runSession starts a session over the titles, waits for the worker to
// finish, and returns every emitted event.
func runSession(t *testing.T, spec *Spec, client wiki.Client, titles []string) []Event {
	t.Helper()

	s := NewSession(spec, client, nil)
	require.NoError(t, s.Start(context.Background(), titles))

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish")
	}
	return s.Events().Drain()
}

func resultsOf(events []Event) []ArticleResult {
	var out []ArticleResult
	for _, e := range events {
		if e.Kind == EventResult {
			out = append(out, *e.Result)
		}
	}
	return out
}

func summaryOf(t *testing.T, events []Event) Summary {
	t.Helper()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, EventDone, last.Kind, "final event must carry the summary")
	return *last.Summary
}

func TestSession_ConsistentArticle(t *testing.T) {
	client := &stubClient{
		redirect: func(_, title string) (string, error) {
			if title == "H2O" {
				return "Voda", nil
			}
			return "", nil
		},
		fetch: func(edition, title string) (string, error) {
			switch edition {
			case "cs":
				require.Equal(t, "Voda", title, "fetch must use the redirect target")
				return csMarkup, nil
			case "en":
				return enMarkup, nil
			case "de":
				return deMarkup, nil
			}
			return "", errors.New("unexpected edition")
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water", "de": "Wasser"}, nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"H2O"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassOK, results[0].Class)
	assert.Equal(t, "H2O", results[0].Title)
	assert.Contains(t, results[0].Header, "EN: Water")
	assert.Contains(t, results[0].Header, "DE: Wasser")
	assert.Contains(t, results[0].Header, "OK")
	assert.Empty(t, results[0].Mismatches)

	summary := summaryOf(t, events)
	assert.Equal(t, Summary{OK: 1}, summary)
}

func TestSession_Discrepancy(t *testing.T) {
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			switch edition {
			case "cs":
				return csMarkup, nil
			case "en":
				return "{{Chembox\n| CASNo = 64-17-5\n| Density = 0.9982\n}}", nil
			}
			return "", errors.New("unexpected edition")
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassError, results[0].Class)
	require.Len(t, results[0].Mismatches, 1)

	m := results[0].Mismatches[0]
	assert.Equal(t, "CAS", m.Field)
	assert.Equal(t, "en", m.Edition)
	assert.Equal(t, "7732-18-5", m.Source)
	assert.Equal(t, "64-17-5", m.Target)

	assert.Equal(t, Summary{Errors: 1}, summaryOf(t, events))
	// The missing German sitelink degrades that edition, not the article.
	assert.Contains(t, results[0].Header, "DE: N/A")
}

func TestSession_MissingArticle(t *testing.T) {
	fetched := false
	client := &stubClient{
		exists: func(_, _ string) (bool, error) { return false, nil },
		fetch: func(_, _ string) (string, error) {
			fetched = true
			return "", nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Neexistuje"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassMissing, results[0].Class)
	assert.Contains(t, results[0].Header, "does not exist on cs")
	assert.False(t, fetched, "a missing article must not be fetched")
	assert.Equal(t, Summary{Missing: 1}, summaryOf(t, events))
}

func TestSession_NoSourceInfobox(t *testing.T) {
	client := &stubClient{
		fetch: func(_, _ string) (string, error) {
			return "Jen text bez infoboxu.", nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassMissing, results[0].Class)
	assert.Contains(t, results[0].Header, "no infobox")
}

func TestSession_NoLinkedEntity(t *testing.T) {
	// The default stub resolves no entity at all; only the source edition
	// may be fetched.
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			require.Equal(t, "cs", edition, "unlinked articles must not fetch targets")
			return csMarkup, nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassMissing, results[0].Class)
	assert.Contains(t, results[0].Header, "no target infoboxes")
	assert.Empty(t, results[0].Mismatches)

	// A page without a linked entity is an ordinary outcome, not a failure.
	for _, e := range events {
		assert.NotEqual(t, EventLog, e.Kind, "unexpected warning: %s", e.Message)
	}
	assert.Equal(t, Summary{Missing: 1}, summaryOf(t, events))
}

func TestSession_NoTargetInfoboxes(t *testing.T) {
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			if edition == "cs" {
				return csMarkup, nil
			}
			return "No infobox on this edition.", nil
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassMissing, results[0].Class)
	assert.Contains(t, results[0].Header, "no target infoboxes")
	assert.Equal(t, Summary{Missing: 1}, summaryOf(t, events))
}

func TestSession_SourceErrorDegradesToMissing(t *testing.T) {
	client := &stubClient{
		exists: func(_, _ string) (bool, error) {
			return false, errors.New("api unreachable")
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassMissing, results[0].Class)

	var logged bool
	for _, e := range events {
		if e.Kind == EventLog {
			logged = true
		}
	}
	assert.True(t, logged, "the failure must surface on the event stream")
}

func TestSession_OutageAbortsRun(t *testing.T) {
	calls := 0
	client := &stubClient{
		exists: func(_, _ string) (bool, error) {
			calls++
			return false, errors.New("api unreachable")
		},
	}

	titles := make([]string, 10)
	for i := range titles {
		titles[i] = fmt.Sprintf("Article %d", i)
	}

	events := runSession(t, testSpec(), client, titles)

	// After a run of consecutive transport failures the remaining articles
	// are not attempted and the summary carries the partial counts.
	assert.Equal(t, 5, calls)
	assert.Len(t, resultsOf(events), 5)

	summary := summaryOf(t, events)
	assert.True(t, summary.Stopped)
	assert.Equal(t, 5, summary.Missing)
}

func TestSession_FailureCountResetsOnSuccess(t *testing.T) {
	calls := 0
	client := &stubClient{
		exists: func(_, _ string) (bool, error) {
			calls++
			// Every third lookup succeeds, so failures never accumulate to
			// the abort threshold.
			if calls%3 == 0 {
				return false, nil
			}
			return false, errors.New("api unreachable")
		},
	}

	titles := make([]string, 9)
	for i := range titles {
		titles[i] = fmt.Sprintf("Article %d", i)
	}

	events := runSession(t, testSpec(), client, titles)

	assert.Len(t, resultsOf(events), 9)
	summary := summaryOf(t, events)
	assert.False(t, summary.Stopped)
	assert.Equal(t, 9, summary.Missing)
}

func TestSession_DoneBeforeStart(t *testing.T) {
	s := NewSession(testSpec(), &stubClient{}, nil)

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("Done must not block before the first run")
	}
	assert.False(t, s.Running())
}

func TestSession_EmptySourceValueSkipped(t *testing.T) {
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			if edition == "cs" {
				// CAS is present but empty, density differs wildly.
				return "{{Infobox - chemická sloučenina\n| číslo CAS =\n| hustota =\n}}", nil
			}
			return enMarkup, nil
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	events := runSession(t, testSpec(), client, []string{"Voda"})

	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassOK, results[0].Class, "empty source values are not compared")
}

func TestSession_ReportAbsent(t *testing.T) {
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			if edition == "cs" {
				return csMarkup, nil
			}
			// Density candidate key is missing entirely.
			return "{{Chembox\n| CASNo = 7732-18-5\n}}", nil
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	spec := testSpec()
	events := runSession(t, spec, client, []string{"Voda"})
	results := resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassOK, results[0].Class, "absent targets are skipped by default")

	spec = testSpec()
	spec.ReportAbsent = true
	events = runSession(t, spec, client, []string{"Voda"})
	results = resultsOf(events)
	require.Len(t, results, 1)
	assert.Equal(t, ClassError, results[0].Class)
	require.Len(t, results[0].Mismatches, 1)
	assert.Equal(t, "Hustota", results[0].Mismatches[0].Field)
	assert.Empty(t, results[0].Mismatches[0].Target)
}

func TestSession_StopAtArticleBoundary(t *testing.T) {
	var s *Session
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			if edition == "cs" {
				// Request cancellation mid-article; the current article
				// still completes.
				s.Stop()
				return csMarkup, nil
			}
			return enMarkup, nil
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	s = NewSession(testSpec(), client, nil)
	require.NoError(t, s.Start(context.Background(), []string{"Voda", "Ethanol", "Methanol"}))

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish")
	}
	events := s.Events().Drain()

	results := resultsOf(events)
	require.Len(t, results, 1, "remaining articles must not be processed")

	summary := summaryOf(t, events)
	assert.True(t, summary.Stopped)
	assert.Equal(t, 1, summary.OK)
	assert.False(t, s.Running())
}

func TestSession_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &stubClient{
		fetch: func(edition, _ string) (string, error) {
			if edition == "cs" {
				cancel()
				return csMarkup, nil
			}
			return enMarkup, nil
		},
		sitelinks: func(_, _ string) (map[string]string, error) {
			return map[string]string{"en": "Water"}, nil
		},
	}

	s := NewSession(testSpec(), client, nil)
	require.NoError(t, s.Start(ctx, []string{"Voda", "Ethanol"}))

	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish")
	}
	events := s.Events().Drain()

	require.Len(t, resultsOf(events), 1)
	assert.True(t, summaryOf(t, events).Stopped)
}

func TestSession_StartWhileRunning(t *testing.T) {
	release := make(chan struct{})
	client := &stubClient{
		exists: func(_, _ string) (bool, error) {
			<-release
			return false, nil
		},
	}

	s := NewSession(testSpec(), client, nil)
	require.NoError(t, s.Start(context.Background(), []string{"Voda"}))
	assert.ErrorIs(t, s.Start(context.Background(), []string{"Voda"}), ErrAlreadyRunning)

	close(release)
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not finish")
	}

	// Once the worker exits the session accepts a new run.
	require.NoError(t, s.Start(context.Background(), []string{"Voda"}))
	<-s.Done()
}

func TestSession_InvalidSpec(t *testing.T) {
	spec := testSpec()
	spec.Targets = nil

	s := NewSession(spec, &stubClient{}, nil)
	err := s.Start(context.Background(), []string{"Voda"})
	require.Error(t, err)
	assert.False(t, s.Running())
}
