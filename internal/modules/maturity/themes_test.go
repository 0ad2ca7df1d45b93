package maturity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedCatalog(t *testing.T) ThemeCatalog {
	t.Helper()
	raw, err := themesFS.ReadFile("themes.yaml")
	require.NoError(t, err)
	c, err := ParseThemeCatalog(raw)
	require.NoError(t, err)
	return c
}

func TestEmbeddedCatalogOrder(t *testing.T) {
	c := embeddedCatalog(t)
	require.Len(t, c.Themes, 7)
	assert.Equal(t, "Formation & Compétences", c.Themes[0].Label)
	assert.Equal(t, "Sécurité & Conformité", c.Themes[6].Label)
	assert.Equal(t, "Autres", c.Other)
	assert.Contains(t, c.Themes[3].Keywords, "master data")
}

func TestClassifyFirstThemeWins(t *testing.T) {
	c := embeddedCatalog(t)
	// "budget" is theme 2, "formation" is theme 1
	got := c.Classify([]string{"Budget alloué à la FORMATION des équipes"})
	require.Len(t, got, 1)
	assert.Equal(t, "Formation & Compétences", got[0].Label)
}

func TestClassifyOtherAndSkipsEmpty(t *testing.T) {
	c := embeddedCatalog(t)
	got := c.Classify([]string{"", "Rien de particulier", "Audit RGPD en cours", "Lancement d'un POC"})

	require.Len(t, got, 3)
	assert.Equal(t, "Technologie & Outils", got[0].Label)
	assert.Equal(t, "Sécurité & Conformité", got[1].Label)
	assert.Equal(t, "Autres", got[2].Label)
	assert.Equal(t, []string{"Rien de particulier"}, got.Get("Autres"))
	assert.Nil(t, got.Get("Budget & Coûts"))
}

func TestClassifyIsDeterministicAndOrderPreserving(t *testing.T) {
	c := embeddedCatalog(t)
	in := []string{"data lake", "qualité des données", "outil interne", "référentiel produit"}
	first := c.Classify(in)
	second := c.Classify(in)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"data lake", "qualité des données", "référentiel produit"}, first.Get("Données & Qualité"))
}

func TestClassifyEmptyInput(t *testing.T) {
	c := embeddedCatalog(t)
	got := c.Classify(nil)
	assert.Empty(t, got)
	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestThemeBucketsJSONKeepsCatalogOrder(t *testing.T) {
	b := ThemeBuckets{
		{Label: "Zeta", Texts: []string{"z"}},
		{Label: "Alpha", Texts: []string{"a", "b"}},
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":["z"],"Alpha":["a","b"]}`, string(raw))
}

func TestParseThemeCatalogValidation(t *testing.T) {
	_, err := ParseThemeCatalog([]byte("themes: []"))
	assert.Error(t, err)

	_, err = ParseThemeCatalog([]byte("themes:\n  - label: A\n    keywords: [x]\n  - label: A\n    keywords: [y]\n"))
	assert.Error(t, err)

	c, err := ParseThemeCatalog([]byte("themes:\n  - label: A\n    keywords: [' MiXed ']\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"mixed"}, c.Themes[0].Keywords)
	assert.Equal(t, "Autres", c.Other)
}

func TestParseThemeCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("other: Divers\nthemes:\n  - label: Cloud\n    keywords: [cloud]\n"), 0o600))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	c, err := ParseThemeCatalog(raw)
	require.NoError(t, err)
	got := c.Classify([]string{"Cloud souverain", "autre chose"})
	assert.Equal(t, []string{"autre chose"}, got.Get("Divers"))
}
