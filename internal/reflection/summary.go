package reflection

import (
	"fmt"
	"regexp"
	"strings"
)

// Common English stopwords excluded from theme analysis.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`i me my myself we our ours ourselves you your yours
yourself yourselves he him his himself she her hers herself it its itself they them their
theirs themselves what which who whom this that these those am is are was were be been
being have has had having do does did doing a an the and but if or because as until while
of at by for with about against between into through during before after above below to
from up down in out on off over under again further then once here there when where why
how all any both each few more most other some such no nor not only own same so than too
very s t can will just don should now`) {
		stopwords[w] = struct{}{}
	}
}

// Word boundaries follow Unicode letters and digits, so accented words count
// as single tokens.
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ThemeWord returns the most frequent content-bearing word across texts,
// case-insensitive, after stopword removal. Ties break toward the word whose
// first occurrence comes earliest. Falls back to "reflection" when no content
// words remain.
func ThemeWord(texts []string) string {
	counts := map[string]int{}
	var order []string
	for _, text := range texts {
		for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
			if _, skip := stopwords[word]; skip {
				continue
			}
			if _, seen := counts[word]; !seen {
				order = append(order, word)
			}
			counts[word]++
		}
	}
	if len(order) == 0 {
		return "reflection"
	}
	best := order[0]
	for _, word := range order[1:] {
		if counts[word] > counts[best] {
			best = word
		}
	}
	return best
}

const emptyWeekSummary = "No moments logged this week. Try to capture a few thoughts next week!"

// Summarize builds the weekly summary sentence from a user's entries in
// chronological order, plus the short reflection-data line.
func Summarize(texts []string) (summary, reflectionData string) {
	reflectionData = fmt.Sprintf("You've logged %d moments in the past week. Keep it up!", len(texts))

	switch len(texts) {
	case 0:
		return emptyWeekSummary, reflectionData
	case 1:
		return fmt.Sprintf("This week you captured one moment: '%s'. What will you focus on next?", texts[0]), reflectionData
	default:
		return fmt.Sprintf(
			"This week you logged %d moments. You started by reflecting on '%s' and ended on '%s'. A recurring theme in your moments was '%s'. Keep reflecting!",
			len(texts), texts[0], texts[len(texts)-1], ThemeWord(texts),
		), reflectionData
	}
}
