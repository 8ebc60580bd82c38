package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRe = regexp.MustCompile(`-?\d+\.?\d*`)

// ExtractNumbers returns every decimal number in the value, in order of
// appearance. The value is normalized first and comma decimal separators are
// converted to dots, so "0,9584" parses the same as "0.9584". Tokens that do
// not parse are skipped.
func ExtractNumbers(s string) []float64 {
	s = NormalizeText(s)
	s = strings.ReplaceAll(s, ",", ".")

	var nums []float64
	for _, token := range numberRe.FindAllString(s, -1) {
		if v, err := strconv.ParseFloat(token, 64); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}
