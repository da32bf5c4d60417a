package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadCatalogFlattensNestedKeys(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", `
auth:
  login: "Log in"
  logout: "Log out"
errors:
  not_found: "Not found"
greeting: "Hello"
`)

	c, err := LoadCatalog(filepath.Join(dir, "en.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "en", c.Locale)
	assert.Equal(t, map[string]string{
		"auth.login":       "Log in",
		"auth.logout":      "Log out",
		"errors.not_found": "Not found",
		"greeting":         "Hello",
	}, c.Entries)
}

func TestLoadCatalogRejectsNonStringLeaves(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", "count: 42\n")

	_, err := LoadCatalog(filepath.Join(dir, "en.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestCheckReportsDivergence(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", `
auth:
  login: "Log in"
  logout: "Log out"
greeting: "Hello"
`)
	writeCatalog(t, dir, "de.yaml", `
auth:
  login: "Anmelden"
  register: "Registrieren"
greeting: ""
`)

	reports, err := Check(dir, "en")
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, "de", r.Locale)
	assert.Equal(t, []string{"auth.logout"}, r.Missing)
	assert.Equal(t, []string{"auth.register"}, r.Extra)
	assert.Equal(t, []string{"greeting"}, r.Empty)
	assert.False(t, r.Clean())
}

func TestCheckCleanLocale(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", "greeting: \"Hello\"\n")
	writeCatalog(t, dir, "fr.yaml", "greeting: \"Bonjour\"\n")

	reports, err := Check(dir, "en")
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Clean())
}

func TestCheckMissingBaseLocale(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "de.yaml", "greeting: \"Hallo\"\n")

	_, err := Check(dir, "en")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `base locale "en"`)
}

func TestFillBackfillsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", `
auth:
  login: "Log in"
  logout: "Log out"
greeting: "Hello"
`)
	writeCatalog(t, dir, "de.yaml", `
auth:
  login: "Anmelden"
`)

	filled, err := Fill(dir, "en")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"de": 2}, filled)

	// The rewritten catalog parses and now covers the base key set.
	c, err := LoadCatalog(filepath.Join(dir, "de.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Anmelden", c.Entries["auth.login"])
	assert.Equal(t, FillMarker+"Log out", c.Entries["auth.logout"])
	assert.Equal(t, FillMarker+"Hello", c.Entries["greeting"])

	reports, err := Check(dir, "en")
	require.NoError(t, err)
	assert.Empty(t, reports[0].Missing)
}

func TestFillLeavesCompleteCatalogsAlone(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "en.yaml", "greeting: \"Hello\"\n")
	writeCatalog(t, dir, "fr.yaml", "greeting: \"Bonjour\"\n")

	before, err := os.ReadFile(filepath.Join(dir, "fr.yaml"))
	require.NoError(t, err)

	filled, err := Fill(dir, "en")
	require.NoError(t, err)
	assert.Empty(t, filled)

	after, err := os.ReadFile(filepath.Join(dir, "fr.yaml"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "complete catalog should not be rewritten")
}
