package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/OndraMix/Wiki/core/reconcile"
	"github.com/OndraMix/Wiki/core/wiki"
	"github.com/OndraMix/Wiki/feature/chembox"
)

// CheckRequest is the POST /api/check payload.
type CheckRequest struct {
	// Titles are the article titles to check, in order.
	Titles []string `json:"titles"`

	// ReportAbsent counts a filled source value missing from every target
	// as a discrepancy.
	ReportAbsent bool `json:"report_absent"`

	// Fields optionally overrides the default configuration per field
	// label. Unknown labels are rejected.
	Fields map[string]FieldOverride `json:"fields"`
}

// FieldOverride adjusts one field's comparison settings. Nil members keep
// the default.
type FieldOverride struct {
	Enabled    *bool    `json:"enabled"`
	Mode       *string  `json:"mode"`
	Tolerance  *float64 `json:"tolerance"`
	SmartUnits *bool    `json:"smart_units"`
}

// CheckReport is the full synchronous run result.
type CheckReport struct {
	Results []reconcile.ArticleResult `json:"results"`
	Summary reconcile.Summary         `json:"summary"`
	Log     []string                  `json:"log,omitempty"`
}

// FieldInfo describes one registry entry for GET /api/fields.
type FieldInfo struct {
	Label      string                `json:"label"`
	SourceKey  string                `json:"source_key"`
	TargetKeys map[string][]string   `json:"target_keys"`
	Default    reconcile.FieldConfig `json:"default"`
}

// Service runs reconciliation checks for API consumers.
type Service struct {
	client wiki.Client
	logger *zap.Logger
}

// NewService creates a new report service.
func NewService(client wiki.Client, logger *zap.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// ListFields returns the attribute registry with the default configuration.
func (s *Service) ListFields() []FieldInfo {
	defaults := chembox.DefaultConfig()
	fields := chembox.Fields()

	out := make([]FieldInfo, len(fields))
	for i, f := range fields {
		out[i] = FieldInfo{
			Label:      f.Label,
			SourceKey:  f.SourceKey,
			TargetKeys: f.TargetKeys,
			Default:    defaults[f.Label],
		}
	}
	return out
}

// RunCheck builds a spec from the request and drives a session to
// completion, returning the collected results.
func (s *Service) RunCheck(ctx context.Context, req CheckRequest) (*CheckReport, error) {
	if len(req.Titles) == 0 {
		return nil, fmt.Errorf("no article titles submitted")
	}

	spec := chembox.NewSpec()
	spec.ReportAbsent = req.ReportAbsent
	if err := applyOverrides(spec, req.Fields); err != nil {
		return nil, err
	}

	session := reconcile.NewSession(spec, s.client, s.logger)
	if err := session.Start(ctx, req.Titles); err != nil {
		return nil, err
	}
	<-session.Done()

	report := &CheckReport{Results: []reconcile.ArticleResult{}}
	for _, e := range session.Events().Drain() {
		switch e.Kind {
		case reconcile.EventLog:
			report.Log = append(report.Log, e.Message)
		case reconcile.EventResult:
			report.Results = append(report.Results, *e.Result)
		case reconcile.EventDone:
			report.Summary = *e.Summary
		}
	}
	return report, nil
}

func applyOverrides(spec *reconcile.Spec, overrides map[string]FieldOverride) error {
	for label, o := range overrides {
		cfg, ok := spec.Config[label]
		if !ok {
			return fmt.Errorf("unknown field %q", label)
		}
		if o.Enabled != nil {
			cfg.Enabled = *o.Enabled
		}
		if o.Mode != nil {
			mode, err := reconcile.ParseMode(*o.Mode)
			if err != nil {
				return fmt.Errorf("field %q: %w", label, err)
			}
			cfg.Mode = mode
		}
		if o.Tolerance != nil {
			cfg.Tolerance = *o.Tolerance
		}
		if o.SmartUnits != nil {
			cfg.SmartUnits = *o.SmartUnits
		}
		spec.Config[label] = cfg
	}
	return nil
}
