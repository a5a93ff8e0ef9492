// Package icons manages the fixed catalog of marker icons, loaded from the
// icons directory on disk.
package icons

import (
	"fmt"
	"os"
	"sort"
)

// Catalog is the set of valid icon keys plus the fallback used for unknown
// ones.
type Catalog struct {
	icons       map[string]struct{}
	sorted      []string
	defaultIcon string
}

// Load reads the icon files in dir (subdirectories are skipped) and builds
// the catalog. defaultIcon is returned by Valid for unknown keys and does
// not need to exist in dir.
func Load(dir, defaultIcon string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading icons directory: %w", err)
	}

	c := &Catalog{
		icons:       make(map[string]struct{}),
		defaultIcon: defaultIcon,
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		c.icons[e.Name()] = struct{}{}
		c.sorted = append(c.sorted, e.Name())
	}
	sort.Strings(c.sorted)
	return c, nil
}

// Valid returns icon when it is part of the catalog, the default icon
// otherwise.
func (c *Catalog) Valid(icon string) string {
	if _, ok := c.icons[icon]; ok {
		return icon
	}
	return c.defaultIcon
}

// Default returns the fallback icon key.
func (c *Catalog) Default() string {
	return c.defaultIcon
}

// List returns all icon keys in sorted order.
func (c *Catalog) List() []string {
	return append([]string(nil), c.sorted...)
}
