package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/OndraMix/Wiki/core/wiki"
)

// ErrAlreadyRunning is returned by Start while a prior worker is still active.
var ErrAlreadyRunning = errors.New("a check is already running")

// maxConsecutiveFailures is the number of articles in a row whose source
// lookups may fail on transport errors before the run is treated as a
// systemic outage and aborted.
const maxConsecutiveFailures = 5

// Session owns one reconciliation run: the spec, the event queue, and the
// background worker state. Exactly one worker may be active per session at
// any time; the session itself holds no per-article state between runs.
type Session struct {
	spec   *Spec
	client wiki.Client
	log    *zap.Logger

	queue   *Queue
	running atomic.Bool
	stop    atomic.Bool

	mu   sync.Mutex
	done chan struct{}
}

// NewSession creates a session for the given run specification. The spec
// must not be mutated while a run is active.
func NewSession(spec *Spec, client wiki.Client, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	// A closed channel keeps Done safe to receive from before the first
	// Start; Start swaps in a fresh one.
	done := make(chan struct{})
	close(done)

	return &Session{
		spec:   spec,
		client: client,
		log:    log,
		queue:  NewQueue(),
		done:   done,
	}
}

// Events returns the queue the presentation layer drains.
func (s *Session) Events() *Queue {
	return s.queue
}

// Running reports whether a worker is currently active.
func (s *Session) Running() bool {
	return s.running.Load()
}

// Start validates the spec and launches the background worker over the
// article titles. It fails with ErrAlreadyRunning while a prior worker is
// still active.
func (s *Session) Start(ctx context.Context, titles []string) error {
	if err := s.spec.Validate(); err != nil {
		return fmt.Errorf("invalid run spec: %w", err)
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.stop.Store(false)

	done := make(chan struct{})
	s.mu.Lock()
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		defer s.running.Store(false)
		s.run(ctx, titles)
	}()
	return nil
}

// Stop requests cooperative cancellation. The worker observes the flag at
// the next article boundary; already-queued events are still delivered and
// the final Done event follows.
func (s *Session) Stop() {
	s.stop.Store(true)
}

// Done returns a channel closed when the current run's worker has exited.
// Before the first Start it returns an already-closed channel.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Session) run(ctx context.Context, titles []string) {
	var summary Summary
	total := len(titles)
	failures := 0

	for i, title := range titles {
		if s.stop.Load() || ctx.Err() != nil {
			summary.Stopped = true
			s.logEvent(fmt.Sprintf("Stop requested, %d of %d articles processed", i, total))
			break
		}

		s.queue.Push(Event{
			Kind:     EventProgress,
			Fraction: float64(i) / float64(total),
			Message:  "Processing: " + title,
		})

		result, failed := s.checkArticle(ctx, title)
		switch result.Class {
		case ClassOK:
			summary.OK++
		case ClassError:
			summary.Errors++
		case ClassMissing:
			summary.Missing++
		}
		s.queue.Push(Event{Kind: EventResult, Result: &result})

		// A long run of source-side transport failures means the wiki is
		// unreachable, not that the articles are missing.
		if failed {
			failures++
			if failures >= maxConsecutiveFailures {
				summary.Stopped = true
				s.logEvent(fmt.Sprintf("Aborting run after %d consecutive lookup failures", failures))
				break
			}
		} else {
			failures = 0
		}
	}

	if !summary.Stopped {
		s.queue.Push(Event{Kind: EventProgress, Fraction: 1, Message: "Done"})
	}
	s.queue.Push(Event{Kind: EventDone, Summary: &summary})
}

// checkArticle drives a single article through the resolution and comparison
// state machine. Per-edition failures degrade that edition; they never abort
// the article. The second return reports a source-side transport failure so
// the caller can detect a systemic outage.
func (s *Session) checkArticle(ctx context.Context, title string) (ArticleResult, bool) {
	src := s.spec.SourceEdition

	exists, err := s.client.Exists(ctx, src, title)
	if err != nil {
		s.logEvent(fmt.Sprintf("Lookup of %q on %s failed: %v", title, src, err))
		return missing(title, fmt.Sprintf("%s: source lookup failed", title)), true
	}
	if !exists {
		return missing(title, fmt.Sprintf("%s: does not exist on %s", title, src)), false
	}

	// Follow a single redirect hop; no further chasing.
	resolved := title
	if target, err := s.client.RedirectTarget(ctx, src, title); err != nil {
		s.logEvent(fmt.Sprintf("Redirect check for %q on %s failed: %v", title, src, err))
	} else if target != "" {
		resolved = target
	}

	markup, err := s.client.Fetch(ctx, src, resolved)
	if err != nil {
		s.logEvent(fmt.Sprintf("Fetch of %q on %s failed: %v", resolved, src, err))
		return missing(title, fmt.Sprintf("%s: source fetch failed", title)), true
	}

	sourceBox, ok := ExtractInfobox(markup, s.spec.SourceTemplates)
	if !ok {
		return missing(title, fmt.Sprintf("%s: no infobox", title)), false
	}

	links, err := s.client.Sitelinks(ctx, src, resolved)
	if err != nil && !errors.Is(err, wiki.ErrNoEntity) {
		s.logEvent(fmt.Sprintf("Sitelink resolution for %q failed: %v", resolved, err))
	}

	type targetBox struct {
		edition string
		params  map[string]string
	}
	var boxes []targetBox
	headerParts := make([]string, 0, len(s.spec.Targets))

	for _, target := range s.spec.Targets {
		linked, hasLink := links[target.Edition]
		if !hasLink {
			headerParts = append(headerParts, strings.ToUpper(target.Edition)+": N/A")
			continue
		}
		headerParts = append(headerParts, strings.ToUpper(target.Edition)+": "+linked)

		targetMarkup, err := s.client.Fetch(ctx, target.Edition, linked)
		if err != nil {
			s.logEvent(fmt.Sprintf("Fetch of %q on %s failed: %v", linked, target.Edition, err))
			continue
		}
		params, ok := ExtractInfobox(targetMarkup, target.Templates)
		if !ok {
			continue
		}
		boxes = append(boxes, targetBox{edition: target.Edition, params: params})
	}

	header := fmt.Sprintf("Article: [[%s]] (%s)", title, strings.Join(headerParts, ", "))

	if len(boxes) == 0 {
		return missing(title, fmt.Sprintf("%s: no target infoboxes", title)), false
	}

	var mismatches []Outcome
	for _, field := range s.spec.Fields {
		cfg, ok := s.spec.Config[field.Label]
		if !ok || !cfg.Enabled {
			continue
		}
		sourceVal := sourceBox[field.SourceKey]
		if strings.TrimSpace(sourceVal) == "" {
			continue
		}

		for _, box := range boxes {
			// First present candidate key wins, even with an empty value.
			targetVal, present := "", false
			for _, key := range field.TargetKeys[box.edition] {
				if v, ok := box.params[key]; ok {
					targetVal, present = v, true
					break
				}
			}
			if !present || strings.TrimSpace(targetVal) == "" {
				if s.spec.ReportAbsent {
					_, repr, _ := MatchValues(sourceVal, "", cfg, field.Kind)
					mismatches = append(mismatches, Outcome{
						Field:   field.Label,
						Edition: box.edition,
						Source:  repr,
					})
				}
				continue
			}

			matched, srcRepr, tgtRepr := MatchValues(sourceVal, targetVal, cfg, field.Kind)
			if !matched {
				mismatches = append(mismatches, Outcome{
					Field:   field.Label,
					Edition: box.edition,
					Source:  srcRepr,
					Target:  tgtRepr,
				})
			}
		}
	}

	if len(mismatches) > 0 {
		return ArticleResult{Title: title, Class: ClassError, Header: header, Mismatches: mismatches}, false
	}
	return ArticleResult{Title: title, Class: ClassOK, Header: header + " -> OK"}, false
}

// logEvent mirrors a diagnostic line to the structured log and the event
// stream, so both the operator console and the presentation surface see it.
func (s *Session) logEvent(message string) {
	s.log.Warn(message)
	s.queue.Push(Event{Kind: EventLog, Message: message})
}

func missing(title, header string) ArticleResult {
	return ArticleResult{Title: title, Class: ClassMissing, Header: header}
}
