package dictionary

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCategory is the YAML-serialized form of a Category.
type yamlCategory struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// yamlGroup is the YAML-serialized form of a Group. One file holds one group.
type yamlGroup struct {
	Group      string         `yaml:"group"`
	Label      string         `yaml:"label,omitempty"`
	Composite  bool           `yaml:"composite"`
	Categories []yamlCategory `yaml:"categories"`
}

// LoadFromFS loads every YAML group file under dir and builds a validated
// Store. Files are read in sorted name order so the taxonomy's reporting
// order is deterministic regardless of filesystem.
func LoadFromFS(fsys fs.FS, dir string) (*Store, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read dictionary dir %q: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var groups []Group
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		var yg yamlGroup
		if err := yaml.Unmarshal(data, &yg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		groups = append(groups, convertGroup(yg))
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no dictionary files in %q", dir)
	}

	store, err := NewStore(groups)
	if err != nil {
		return nil, fmt.Errorf("dictionary dir %q: %w", dir, err)
	}
	return store, nil
}

// convertGroup maps the YAML form onto the domain form. Validation happens
// in NewStore, not here.
func convertGroup(yg yamlGroup) Group {
	g := Group{Name: yg.Group, Label: yg.Label, Composite: yg.Composite}
	for _, yc := range yg.Categories {
		g.Categories = append(g.Categories, Category{
			Name:     yc.Name,
			Label:    yc.Label,
			Keywords: yc.Keywords,
		})
	}
	return g
}
