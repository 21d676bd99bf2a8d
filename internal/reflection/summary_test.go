package reflection

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThemeWord(t *testing.T) {
	t.Parallel()

	texts := []string{
		"I felt grit and resilience",
		"Grit helped me today",
		"Another day of grit",
	}
	require.Equal(t, "grit", ThemeWord(texts))
}

func TestThemeWord_TieBreaksOnFirstOccurrence(t *testing.T) {
	t.Parallel()

	// "courage" and "patience" both appear twice; courage occurs first.
	texts := []string{
		"courage today",
		"patience tomorrow",
		"courage again, patience again",
	}
	require.Equal(t, "courage", ThemeWord(texts))
}

func TestThemeWord_OnlyStopwords(t *testing.T) {
	t.Parallel()

	require.Equal(t, "reflection", ThemeWord([]string{"I was very so", "the and but"}))
}

func TestThemeWord_UnicodeWordsStayWhole(t *testing.T) {
	t.Parallel()

	texts := []string{
		"café visits with friends",
		"the café again",
		"another café morning",
	}
	require.Equal(t, "café", ThemeWord(texts))
}

func TestThemeWord_CaseInsensitive(t *testing.T) {
	t.Parallel()

	require.Equal(t, "grit", ThemeWord([]string{"GRIT", "Grit matters", "some grit"}))
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	summary, data := Summarize(nil)
	require.Equal(t, "No moments logged this week. Try to capture a few thoughts next week!", summary)
	require.Equal(t, "You've logged 0 moments in the past week. Keep it up!", data)
}

func TestSummarize_SingleEntry(t *testing.T) {
	t.Parallel()

	summary, data := Summarize([]string{"shipped the release"})
	require.Equal(t, "This week you captured one moment: 'shipped the release'. What will you focus on next?", summary)
	require.Equal(t, "You've logged 1 moments in the past week. Keep it up!", data)
}

func TestSummarize_MultipleEntries(t *testing.T) {
	t.Parallel()

	summary, _ := Summarize([]string{
		"I felt grit and resilience",
		"Grit helped me today",
		"Another day of grit",
	})
	require.Equal(t,
		"This week you logged 3 moments. You started by reflecting on 'I felt grit and resilience' "+
			"and ended on 'Another day of grit'. A recurring theme in your moments was 'grit'. Keep reflecting!",
		summary)
}
