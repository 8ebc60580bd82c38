// Package reconcile compares the same factual attributes across language
// editions of a wiki and classifies each article's consistency.
//
// The package is generic over the attribute set: a FieldSpec registry (see
// feature/chembox for the chemistry one) names each comparable field, where
// to find it on the source edition, and which candidate parameter keys hold
// it on each target edition.
//
// # Architecture
//
// The reconcile system consists of three main components:
//
//  1. Matcher: normalizes two raw field values and decides equality under a
//     configured comparison mode, tolerance, and an optional bounded
//     unit-equivalence heuristic (decimal magnitudes, Kelvin offset,
//     Fahrenheit conversion).
//
//  2. Session: the per-run orchestrator. One background worker walks the
//     article list, resolves the source page, follows a single redirect,
//     extracts infoboxes via the template scanner, resolves sitelinks, runs
//     the matcher per enabled field and target edition, and classifies the
//     article as ok, error, or missing.
//
//  3. Queue: the unbounded FIFO event stream between the worker and the
//     presentation layer. Exactly one producer and one consumer are active
//     at any time; the producer never blocks and the consumer drains on its
//     own polling period.
//
// # Failure Containment
//
// Failures are contained at the smallest possible scope. A target edition
// that cannot be fetched or parsed degrades to "no infobox" for that article
// only; a failing article never aborts the batch. Several source-side
// transport failures in a row are treated as an outage and end the run
// early. Cancellation is cooperative and observed at article boundaries;
// the final Done event with the partial counts is always delivered.
//
// # Usage Example
//
//	spec := &reconcile.Spec{
//	    SourceEdition:   "cs",
//	    SourceTemplates: []string{"Infobox - chemická sloučenina"},
//	    Targets:         chembox.Targets(),
//	    Fields:          chembox.Fields(),
//	    Config:          chembox.DefaultConfig(),
//	}
//	session := reconcile.NewSession(spec, client, log)
//	if err := session.Start(ctx, titles); err != nil { ... }
//	for _, ev := range session.Events().Drain() { ... }
package reconcile
