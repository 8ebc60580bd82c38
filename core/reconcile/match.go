package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/OndraMix/Wiki/core/wikitext"
)

// MatchValues compares a raw source and target field value under the field's
// configuration. It returns the match verdict together with the normalized
// representations of both sides, which are reported regardless of outcome.
func MatchValues(source, target string, cfg FieldConfig, kind ValueKind) (matched bool, sourceRepr, targetRepr string) {
	if cfg.Mode == ModeStandard {
		var ns, nt string
		if kind == KindIdentifier {
			ns = wikitext.NormalizeIdentifier(source)
			nt = wikitext.NormalizeIdentifier(target)
		} else {
			ns = wikitext.NormalizeText(source)
			nt = wikitext.NormalizeText(target)
		}
		return ns == nt, ns, nt
	}

	src := wikitext.ExtractNumbers(source)
	tgt := wikitext.ExtractNumbers(target)

	// A side without any numbers falls back to comparing the joined string
	// forms, so "empty vs empty" still matches.
	if len(src) == 0 || len(tgt) == 0 {
		s, t := joinNumbers(src), joinNumbers(tgt)
		return s == t, s, t
	}

	switch cfg.Mode {
	case ModeFirstNumeric:
		n1, n2 := src[0], tgt[0]
		ok := math.Abs(n1-n2) <= cfg.Tolerance
		if !ok && cfg.SmartUnits {
			ok = UnitEquivalent(n1, n2, cfg.Tolerance)
		}
		return ok, formatNumber(n1), formatNumber(n2)

	case ModeAllNumeric:
		// Different sequence lengths never match, regardless of tolerance.
		if len(src) != len(tgt) {
			return false, joinNumbers(src), joinNumbers(tgt)
		}
		for i := range src {
			ok := math.Abs(src[i]-tgt[i]) <= cfg.Tolerance
			if !ok && cfg.SmartUnits {
				ok = UnitEquivalent(src[i], tgt[i], cfg.Tolerance)
			}
			if !ok {
				return false, joinNumbers(src), joinNumbers(tgt)
			}
		}
		return true, joinNumbers(src), joinNumbers(tgt)
	}

	return false, source, target
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func joinNumbers(nums []float64) string {
	parts := make([]string, len(nums))
	for i, v := range nums {
		parts[i] = formatNumber(v)
	}
	return strings.Join(parts, " ")
}
