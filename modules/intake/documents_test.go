package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFilenames(t *testing.T) {
	t.Parallel()

	t.Run("folds diacritics to ascii", func(t *testing.T) {
		t.Parallel()

		sub := FormSubmission{"meno": "Jana", "priezvisko": "Nováková"}
		assert.Equal(t, []string{
			"Zivotopis_Jana_Novakova.pdf",
			"Majetok_Jana_Novakova.pdf",
			"Majetok_Historia_Jana_Novakova.pdf",
			"Veritelia_Jana_Novakova.pdf",
		}, documentFilenames(sub))
	})

	t.Run("handles slovak consonant diacritics", func(t *testing.T) {
		t.Parallel()

		sub := FormSubmission{"meno": "Ľubomír", "priezvisko": "Ďurčo"}
		assert.Equal(t, "Zivotopis_Lubomir_Durco.pdf", documentFilenames(sub)[0])
	})

	t.Run("falls back on placeholders for unusable names", func(t *testing.T) {
		t.Parallel()

		sub := FormSubmission{"meno": "???", "priezvisko": ""}
		assert.Equal(t, "Zivotopis_Dlznik_Neznamy.pdf", documentFilenames(sub)[0])
	})

	t.Run("joins multi-word names with underscores", func(t *testing.T) {
		t.Parallel()

		sub := FormSubmission{"meno": "Anna Mária", "priezvisko": "Kováčová Malá"}
		assert.Equal(t, "Zivotopis_Anna_Maria_Kovacova_Mala.pdf", documentFilenames(sub)[0])
	})
}

func TestDocumentSetClose(t *testing.T) {
	t.Parallel()

	t.Run("removes the working area", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		work := filepath.Join(dir, "intake_abc")
		require.NoError(t, os.MkdirAll(work, 0o700))
		require.NoError(t, os.WriteFile(filepath.Join(work, "data.json"), []byte("{}"), 0o600))

		set := &DocumentSet{dir: work}
		require.NoError(t, set.Close())

		_, err := os.Stat(work)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("safe without a working area", func(t *testing.T) {
		t.Parallel()

		set := &DocumentSet{}
		assert.NoError(t, set.Close())
	})
}
