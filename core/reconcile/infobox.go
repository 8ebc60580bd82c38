package reconcile

import (
	"strings"

	"github.com/OndraMix/Wiki/core/wikitext"
)

// ExtractInfobox merges the parameters of every template in the markup whose
// name contains one of the candidate fragments. Template names are compared
// with underscores normalized to spaces, case-insensitively. Parameters of
// later-matched templates overwrite earlier keys. The boolean reports
// whether any template matched at all, distinguishing "no infobox" from an
// infobox whose fields are all empty.
func ExtractInfobox(markup string, candidates []string) (map[string]string, bool) {
	fragments := make([]string, len(candidates))
	for i, c := range candidates {
		fragments[i] = strings.ToLower(c)
	}

	merged := make(map[string]string)
	found := false
	for _, t := range wikitext.ParseTemplates(markup) {
		name := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(t.Name, "_", " ")))
		for _, fragment := range fragments {
			if !strings.Contains(name, fragment) {
				continue
			}
			for k, v := range t.Params {
				merged[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}
			found = true
			break
		}
	}

	if !found {
		return nil, false
	}
	return merged, true
}
