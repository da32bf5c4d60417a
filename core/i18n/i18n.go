// Package i18n implements the locale-catalog maintenance agent. Catalogs are
// per-locale YAML files of nested string keys; the agent compares every locale
// against a base locale and can backfill missing keys so translators have a
// complete file to work from.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FillMarker prefixes values copied from the base locale by Fill, so
// untranslated strings are easy to grep for.
const FillMarker = "[needs translation] "

// Catalog is one locale's flattened key set. Nested YAML keys are joined with
// dots, so {auth: {login: "Log in"}} becomes "auth.login".
type Catalog struct {
	Locale  string
	Path    string
	Entries map[string]string
}

// Report describes how one locale diverges from the base locale.
type Report struct {
	Locale  string   `json:"locale"`
	Missing []string `json:"missing"` // Keys present in base but absent here.
	Extra   []string `json:"extra"`   // Keys absent from base.
	Empty   []string `json:"empty"`   // Keys present with an empty value.
}

// Clean reports whether the locale needs no work.
func (r Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.Empty) == 0
}

// LoadCatalog parses one locale file. The locale name is the file's base name
// without extension.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var root map[string]interface{}
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}

	c := Catalog{
		Locale:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path:    path,
		Entries: make(map[string]string),
	}
	if err := flatten(root, "", c.Entries); err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadDir loads every .yaml/.yml catalog in dir, keyed by locale.
func LoadDir(dir string) (map[string]Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading catalog directory %s: %w", dir, err)
	}

	catalogs := make(map[string]Catalog)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		c, err := LoadCatalog(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		catalogs[c.Locale] = c
	}
	if len(catalogs) == 0 {
		return nil, fmt.Errorf("no catalogs found in %s", dir)
	}
	return catalogs, nil
}

func flatten(node map[string]interface{}, prefix string, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]interface{}:
			if err := flatten(v, full, out); err != nil {
				return err
			}
		case nil:
			out[full] = ""
		default:
			return fmt.Errorf("key %q: unsupported value type %T (only strings and maps are allowed)", full, value)
		}
	}
	return nil
}

// unflatten rebuilds the nested YAML structure from dotted keys.
func unflatten(entries map[string]string) map[string]interface{} {
	root := make(map[string]interface{})
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				node[part] = entries[key]
				break
			}
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
	}
	return root
}

// Check compares every catalog in dir against the base locale.
func Check(dir, base string) ([]Report, error) {
	catalogs, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	baseCatalog, ok := catalogs[base]
	if !ok {
		return nil, fmt.Errorf("base locale %q has no catalog in %s", base, dir)
	}

	locales := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		if locale != base {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)

	var reports []Report
	for _, locale := range locales {
		c := catalogs[locale]
		r := Report{Locale: locale}
		for key := range baseCatalog.Entries {
			if _, ok := c.Entries[key]; !ok {
				r.Missing = append(r.Missing, key)
			}
		}
		for key, value := range c.Entries {
			if _, ok := baseCatalog.Entries[key]; !ok {
				r.Extra = append(r.Extra, key)
			}
			if value == "" {
				r.Empty = append(r.Empty, key)
			}
		}
		sort.Strings(r.Missing)
		sort.Strings(r.Extra)
		sort.Strings(r.Empty)
		reports = append(reports, r)
	}
	return reports, nil
}

// Fill writes base-locale values (marker-prefixed) into every catalog missing
// them, rewriting the catalog files in place. Returns the number of keys
// filled per locale.
func Fill(dir, base string) (map[string]int, error) {
	catalogs, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	baseCatalog, ok := catalogs[base]
	if !ok {
		return nil, fmt.Errorf("base locale %q has no catalog in %s", base, dir)
	}

	filled := make(map[string]int)
	for locale, c := range catalogs {
		if locale == base {
			continue
		}
		count := 0
		for key, baseValue := range baseCatalog.Entries {
			if _, ok := c.Entries[key]; !ok {
				c.Entries[key] = FillMarker + baseValue
				count++
			}
		}
		if count == 0 {
			continue
		}
		data, err := yaml.Marshal(unflatten(c.Entries))
		if err != nil {
			return nil, fmt.Errorf("marshalling catalog %s: %w", c.Path, err)
		}
		if err := os.WriteFile(c.Path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing catalog %s: %w", c.Path, err)
		}
		filled[locale] = count
	}
	return filled, nil
}
