package chembox

import "github.com/OndraMix/Wiki/core/reconcile"

// SourceEdition is the edition whose infobox is the reference.
const SourceEdition = "cs"

// SourceTemplates identifies the reference infobox. Name matching is a
// case-insensitive substring match, so older template aliases still hit.
func SourceTemplates() []string {
	return []string{"infobox - chemická sloučenina"}
}

// Targets returns the compared editions. The English Chembox is a template
// family whose sections (Chembox Identifiers, Chembox Properties) carry the
// actual parameters, hence the single "chembox" fragment.
func Targets() []reconcile.Target {
	return []reconcile.Target{
		{Edition: "en", Templates: []string{"chembox"}},
		{Edition: "de", Templates: []string{"infobox chemikalie"}},
	}
}

// Fields returns the attribute registry. Candidate target keys are ordered;
// the first one present in the infobox wins.
func Fields() []reconcile.FieldSpec {
	return []reconcile.FieldSpec{
		{
			Label:     "CAS",
			SourceKey: "číslo CAS",
			TargetKeys: map[string][]string{
				"en": {"CASNo", "CAS-No", "CASNo1", "CASNoOther", "CASNo2"},
				"de": {"CAS"},
			},
			Kind: reconcile.KindIdentifier,
		},
		{
			Label:     "EINECS",
			SourceKey: "číslo EINECS",
			TargetKeys: map[string][]string{
				"en": {"EINECS", "EC_number", "EC-no"},
				"de": {"EG-Nummer"},
			},
			Kind: reconcile.KindIdentifier,
		},
		{
			Label:     "PubChem",
			SourceKey: "PubChem",
			TargetKeys: map[string][]string{
				"en": {"PubChem"},
				"de": {"PubChem"},
			},
			Kind: reconcile.KindIdentifier,
		},
		{
			Label:     "Molární hmotnost",
			SourceKey: "molární hmotnost",
			TargetKeys: map[string][]string{
				"en": {"MolarMass"},
				"de": {"Molare Masse"},
			},
			Kind: reconcile.KindText,
		},
		{
			Label:     "Rozpustnost",
			SourceKey: "rozpustnost",
			TargetKeys: map[string][]string{
				"en": {"Solubility"},
				"de": {"Löslichkeit"},
			},
			Kind:              reconcile.KindText,
			SmartUnitsDefault: true,
		},
		{
			Label:     "Teplota tání",
			SourceKey: "teplota tání",
			TargetKeys: map[string][]string{
				"en": {"MeltingPt", "MeltingPtC"},
				"de": {"Schmelzpunkt"},
			},
			Kind:              reconcile.KindText,
			SmartUnitsDefault: true,
		},
		{
			Label:     "Teplota varu",
			SourceKey: "teplota varu",
			TargetKeys: map[string][]string{
				"en": {"BoilingPt", "BoilingPtC"},
				"de": {"Siedepunkt"},
			},
			Kind:              reconcile.KindText,
			SmartUnitsDefault: true,
		},
		{
			Label:     "Hustota",
			SourceKey: "hustota",
			TargetKeys: map[string][]string{
				"en": {"Density"},
				"de": {"Dichte"},
			},
			Kind:              reconcile.KindText,
			SmartUnitsDefault: true,
		},
	}
}

// DefaultConfig returns the per-field run defaults: identifiers match
// exactly, physical quantities compare their first number with a 0.5
// tolerance and the field's unit-heuristic default.
func DefaultConfig() map[string]reconcile.FieldConfig {
	config := make(map[string]reconcile.FieldConfig)
	for _, field := range Fields() {
		cfg := reconcile.FieldConfig{Enabled: true}
		if field.Kind == reconcile.KindText {
			cfg.Mode = reconcile.ModeFirstNumeric
			cfg.Tolerance = 0.5
			cfg.SmartUnits = field.SmartUnitsDefault
		}
		config[field.Label] = cfg
	}
	return config
}

// NewSpec assembles a run specification with the default field configuration.
func NewSpec() *reconcile.Spec {
	return &reconcile.Spec{
		SourceEdition:   SourceEdition,
		SourceTemplates: SourceTemplates(),
		Targets:         Targets(),
		Fields:          Fields(),
		Config:          DefaultConfig(),
	}
}
