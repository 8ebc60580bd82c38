package reconcile

import "fmt"

// ValueKind distinguishes how a field's values are normalized and compared.
type ValueKind int

const (
	// KindIdentifier marks values following a fixed lexical pattern
	// (registry numbers), compared by exact normalized string match.
	KindIdentifier ValueKind = iota
	// KindText marks free-text values, typically physical quantities.
	KindText
)

// Mode selects the comparison strategy for a field.
type Mode int

const (
	// ModeStandard compares the normalized strings for exact equality.
	ModeStandard Mode = iota
	// ModeFirstNumeric compares only the first number found on each side.
	ModeFirstNumeric
	// ModeAllNumeric compares the full number sequences pairwise.
	ModeAllNumeric
)

// String returns the stable name used in flags and the HTTP API.
func (m Mode) String() string {
	switch m {
	case ModeFirstNumeric:
		return "first"
	case ModeAllNumeric:
		return "all"
	default:
		return "standard"
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "standard":
		return ModeStandard, nil
	case "first":
		return ModeFirstNumeric, nil
	case "all":
		return ModeAllNumeric, nil
	default:
		return ModeStandard, fmt.Errorf("unknown comparison mode %q", s)
	}
}

// FieldSpec describes one comparable attribute: where to find it on the
// source edition and which candidate parameter keys may hold it on each
// target edition. FieldSpecs are immutable; a registry defines them once.
type FieldSpec struct {
	// Label is the stable identifier of the field, also used as the key
	// into a run's FieldConfig map.
	Label string `json:"label"`

	// SourceKey is the infobox parameter name on the source edition.
	SourceKey string `json:"source_key"`

	// TargetKeys maps a target edition code to the ordered candidate
	// parameter names; the first present key wins.
	TargetKeys map[string][]string `json:"target_keys"`

	// Kind selects the normalization path.
	Kind ValueKind `json:"kind"`

	// SmartUnitsDefault is the default for the unit heuristic; fields whose
	// editions habitually disagree on units (density, solubility) enable it.
	SmartUnitsDefault bool `json:"smart_units_default"`
}

// FieldConfig is the per-run configuration of one field. It is immutable
// for the duration of a run once the run starts.
type FieldConfig struct {
	// Enabled includes the field in comparisons.
	Enabled bool `json:"enabled"`

	// Mode is the comparison strategy.
	Mode Mode `json:"mode"`

	// Tolerance is the maximum absolute numeric difference still counted
	// as a match. Must be >= 0.
	Tolerance float64 `json:"tolerance"`

	// SmartUnits enables the unit heuristic; only meaningful for the
	// numeric modes.
	SmartUnits bool `json:"smart_units"`
}

// Classification is the mutually exclusive per-article verdict.
type Classification string

const (
	// ClassOK means every compared field matched on every target edition.
	ClassOK Classification = "ok"
	// ClassError means at least one field comparison failed.
	ClassError Classification = "error"
	// ClassMissing means the article could not be compared at all: missing
	// source page, missing source infobox, or no target infobox anywhere.
	ClassMissing Classification = "missing"
)

// Outcome is the result of one field comparison against one target edition.
type Outcome struct {
	// Field is the FieldSpec label.
	Field string `json:"field"`

	// Edition is the target edition code.
	Edition string `json:"edition"`

	// Matched reports whether the values were considered equal.
	Matched bool `json:"matched"`

	// Source is the normalized source representation used for the decision.
	Source string `json:"source"`

	// Target is the normalized target representation used for the decision.
	Target string `json:"target"`
}

// ArticleResult is the single result emitted per submitted article.
type ArticleResult struct {
	// Title is the article title as submitted.
	Title string `json:"title"`

	// Class is the classification verdict.
	Class Classification `json:"classification"`

	// Header is the display line: article plus resolved cross-edition titles.
	Header string `json:"header"`

	// Mismatches holds only the failing comparisons, and only when Class
	// is ClassError.
	Mismatches []Outcome `json:"mismatches,omitempty"`
}

// Summary carries the running totals delivered with the final Done event.
type Summary struct {
	// OK counts consistent articles.
	OK int `json:"ok"`
	// Errors counts articles with at least one discrepancy.
	Errors int `json:"errors"`
	// Missing counts articles that could not be compared.
	Missing int `json:"missing"`
	// Stopped reports whether the run ended on a cancellation request.
	Stopped bool `json:"stopped"`
}

// Target names one target edition and the infobox template fragments that
// identify its chemistry infobox family.
type Target struct {
	// Edition is the edition code (en, de).
	Edition string `json:"edition"`
	// Templates are the candidate template-name fragments.
	Templates []string `json:"templates"`
}

// Spec is the full configuration of one reconciliation run. It must not be
// mutated while a session started from it is running.
type Spec struct {
	// SourceEdition is the edition whose infobox is the reference.
	SourceEdition string

	// SourceTemplates identifies the source edition's infobox.
	SourceTemplates []string

	// Targets are the up-to-two editions compared against.
	Targets []Target

	// Fields is the attribute registry.
	Fields []FieldSpec

	// Config maps a FieldSpec label to its run configuration. Fields
	// without an entry are skipped.
	Config map[string]FieldConfig

	// ReportAbsent counts a non-empty source value whose target lookup is
	// empty or absent as a discrepancy instead of skipping it silently.
	ReportAbsent bool
}

// Validate checks the run invariants before a session starts.
func (s *Spec) Validate() error {
	if s.SourceEdition == "" {
		return fmt.Errorf("source edition is empty")
	}
	if len(s.SourceTemplates) == 0 {
		return fmt.Errorf("no source infobox templates configured")
	}
	if len(s.Targets) == 0 {
		return fmt.Errorf("no target editions configured")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("field registry is empty")
	}
	for label, cfg := range s.Config {
		if cfg.Tolerance < 0 {
			return fmt.Errorf("field %q: tolerance must be >= 0, got %v", label, cfg.Tolerance)
		}
	}
	return nil
}
