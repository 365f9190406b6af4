package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/secframe/dictionaries"
)

// makeGroups returns a small valid taxonomy for construction tests.
func makeGroups() []Group {
	return []Group{
		{
			Name:      "adversaries",
			Composite: true,
			Categories: []Category{
				{Name: "la_casta", Keywords: []string{"casta", "clase política"}},
				{Name: "media", Keywords: []string{"prensa"}},
			},
		},
		{
			Name:      "liberty",
			Composite: false,
			Categories: []Category{
				{Name: "liberty_language", Keywords: []string{"libertad", "libre"}},
			},
		},
	}
}

func TestNewStore_Valid(t *testing.T) {
	s, err := NewStore(makeGroups())
	require.NoError(t, err)

	assert.Equal(t, 3, s.NumCategories())
	assert.Equal(t, 5, s.NumKeywords())
	assert.Equal(t, []string{"la_casta", "media", "liberty_language"}, s.CategoryNames())

	c, ok := s.Category("la_casta")
	require.True(t, ok)
	assert.Equal(t, "adversaries", c.Group)
	assert.Equal(t, []string{"casta", "clase política"}, c.Keywords)

	_, ok = s.Category("nonexistent")
	assert.False(t, ok)
}

func TestNewStore_NoGroups(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestNewStore_DuplicateGroupName(t *testing.T) {
	groups := makeGroups()
	groups[1].Name = "adversaries"
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate group")
}

func TestNewStore_DuplicateCategoryAcrossGroups(t *testing.T) {
	groups := makeGroups()
	groups[1].Categories[0].Name = "media"
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate category")
	assert.Contains(t, err.Error(), "adversaries")
	assert.Contains(t, err.Error(), "liberty")
}

func TestNewStore_EmptyKeywordList(t *testing.T) {
	groups := makeGroups()
	groups[0].Categories[1].Keywords = nil
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no keywords")
}

func TestNewStore_BlankKeyword(t *testing.T) {
	groups := makeGroups()
	groups[0].Categories[0].Keywords = []string{"casta", "   "}
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestNewStore_DuplicateKeywordWithinCategory(t *testing.T) {
	groups := makeGroups()
	groups[0].Categories[0].Keywords = []string{"casta", "casta"}
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate keyword")
}

func TestNewStore_TrimsKeywords(t *testing.T) {
	groups := makeGroups()
	groups[0].Categories[0].Keywords = []string{"  casta  ", "clase política"}
	s, err := NewStore(groups)
	require.NoError(t, err)

	c, _ := s.Category("la_casta")
	assert.Equal(t, []string{"casta", "clase política"}, c.Keywords)
}

func TestNewStore_GroupWithNoCategories(t *testing.T) {
	groups := append(makeGroups(), Group{Name: "war"})
	_, err := NewStore(groups)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no categories")
}

func TestLoadFromFS_EmbeddedTaxonomy(t *testing.T) {
	s, err := LoadFromFS(dictionaries.FS, "es")
	require.NoError(t, err)

	groups := s.Groups()
	require.Len(t, groups, 4)
	assert.Equal(t, "adversaries", groups[0].Name)
	assert.Equal(t, "economic", groups[1].Name)
	assert.Equal(t, "war", groups[2].Name)
	assert.Equal(t, "liberty", groups[3].Name)

	// Liberty is tracked but stays out of the composite.
	assert.True(t, groups[0].Composite)
	assert.True(t, groups[1].Composite)
	assert.True(t, groups[2].Composite)
	assert.False(t, groups[3].Composite)

	assert.Equal(t, 12, s.NumCategories())
	assert.Equal(t, 88, s.NumKeywords())
}

func TestLoadFromFS_EmbeddedCategoryOrder(t *testing.T) {
	s, err := LoadFromFS(dictionaries.FS, "es")
	require.NoError(t, err)

	want := []string{
		"la_casta", "kirchnerismo", "state_apparatus", "progressives",
		"social_movements", "media", "international",
		"fiscal_terrorism", "emergency", "existential",
		"war_language", "liberty_language",
	}
	assert.Equal(t, want, s.CategoryNames())
}

func TestLoadFromFS_EmbeddedKeywordSpotChecks(t *testing.T) {
	s, err := LoadFromFS(dictionaries.FS, "es")
	require.NoError(t, err)

	casta, ok := s.Category("la_casta")
	require.True(t, ok)
	assert.Contains(t, casta.Keywords, "clase política")
	assert.Contains(t, casta.Keywords, "degenerados fiscales")

	war, ok := s.Category("war_language")
	require.True(t, ok)
	assert.Equal(t, []string{"batalla", "guerra", "lucha", "enemigo", "combate", "victoria"}, war.Keywords)

	intl, ok := s.Category("international")
	require.True(t, ok)
	assert.Contains(t, intl.Keywords, "foro de são paulo")
}

func TestLoadFromFS_CustomDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-second.yaml", `
group: second
composite: false
categories:
  - name: beta
    keywords: [uno, dos]
`)
	writeFile(t, dir, "a-first.yaml", `
group: first
composite: true
categories:
  - name: alpha
    keywords: [tres]
`)

	s, err := LoadFromFS(os.DirFS(dir), ".")
	require.NoError(t, err)

	// Files load in sorted name order regardless of creation order.
	groups := s.Groups()
	require.Len(t, groups, 2)
	assert.Equal(t, "first", groups[0].Name)
	assert.Equal(t, "second", groups[1].Name)
	assert.Equal(t, []string{"alpha", "beta"}, s.CategoryNames())
}

func TestLoadFromFS_EmptyDir(t *testing.T) {
	_, err := LoadFromFS(os.DirFS(t.TempDir()), ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dictionary files")
}

func TestLoadFromFS_BadYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yaml", "group: [unclosed")

	_, err := LoadFromFS(os.DirFS(dir), ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadFromFS_InvalidTaxonomy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", `
group: bad
categories:
  - name: empty_cat
    keywords: []
`)

	_, err := LoadFromFS(os.DirFS(dir), ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty_cat")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}
