package maturity

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/maturity-backend/internal/platform/logger"
)

const themesYAMLEnv = "MATURITY_THEMES_YAML"

//go:embed themes.yaml
var themesFS embed.FS

// Theme is one row of the keyword table. Keywords are lowercase substrings.
type Theme struct {
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

// ThemeCatalog is evaluated top to bottom; the first matching theme wins.
type ThemeCatalog struct {
	Themes []Theme
	Other  string
}

type yamlThemeCatalog struct {
	Version int     `yaml:"version"`
	Other   string  `yaml:"other"`
	Themes  []Theme `yaml:"themes"`
}

var (
	catalogOnce sync.Once
	catalog     ThemeCatalog
	catalogErr  error
)

// DefaultThemeCatalog returns the embedded table, or the file named by
// MATURITY_THEMES_YAML when set and valid.
func DefaultThemeCatalog(log *logger.Logger) (ThemeCatalog, error) {
	catalogOnce.Do(func() {
		if path := strings.TrimSpace(os.Getenv(themesYAMLEnv)); path != "" {
			raw, err := os.ReadFile(path)
			if err == nil {
				catalog, err = ParseThemeCatalog(raw)
			}
			if err == nil {
				return
			}
			if log != nil {
				log.Warn("theme catalog override rejected, using embedded table", "path", path, "error", err)
			}
		}
		raw, err := themesFS.ReadFile("themes.yaml")
		if err != nil {
			catalogErr = err
			return
		}
		catalog, catalogErr = ParseThemeCatalog(raw)
	})
	if catalogErr != nil {
		return ThemeCatalog{}, fmt.Errorf("embedded theme catalog: %w", catalogErr)
	}
	return catalog, nil
}

func ParseThemeCatalog(raw []byte) (ThemeCatalog, error) {
	var doc yamlThemeCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return ThemeCatalog{}, fmt.Errorf("parse theme catalog: %w", err)
	}
	if len(doc.Themes) == 0 {
		return ThemeCatalog{}, errors.New("theme catalog has no themes")
	}
	out := ThemeCatalog{Other: strings.TrimSpace(doc.Other)}
	if out.Other == "" {
		out.Other = "Autres"
	}
	seen := map[string]bool{out.Other: true}
	for i, th := range doc.Themes {
		label := strings.TrimSpace(th.Label)
		if label == "" {
			return ThemeCatalog{}, fmt.Errorf("theme %d has no label", i)
		}
		if seen[label] {
			return ThemeCatalog{}, fmt.Errorf("duplicate theme label %q", label)
		}
		seen[label] = true
		kws := make([]string, 0, len(th.Keywords))
		for _, kw := range th.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			return ThemeCatalog{}, fmt.Errorf("theme %q has no keywords", label)
		}
		out.Themes = append(out.Themes, Theme{Label: label, Keywords: kws})
	}
	return out, nil
}

// Match returns the label of the first theme with a keyword contained in
// text, ignoring case.
func (c ThemeCatalog) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, th := range c.Themes {
		for _, kw := range th.Keywords {
			if strings.Contains(lower, kw) {
				return th.Label, true
			}
		}
	}
	return "", false
}

type ThemeBucket struct {
	Label string
	Texts []string
}

// ThemeBuckets keeps catalog order and encodes as a JSON object.
type ThemeBuckets []ThemeBucket

// Get returns the texts of a theme, nil when the theme is absent.
func (b ThemeBuckets) Get(label string) []string {
	for _, bucket := range b {
		if bucket.Label == label {
			return bucket.Texts
		}
	}
	return nil
}

func (b ThemeBuckets) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, bucket := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(bucket.Label)
		if err != nil {
			return nil, err
		}
		texts := bucket.Texts
		if texts == nil {
			texts = []string{}
		}
		val, err := json.Marshal(texts)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Classify buckets texts by theme. Empty texts are skipped; texts matching
// no theme go to the overflow bucket. Empty buckets are omitted.
func (c ThemeCatalog) Classify(texts []string) ThemeBuckets {
	byLabel := make(map[string][]string, len(c.Themes)+1)
	for _, text := range texts {
		if text == "" {
			continue
		}
		label, ok := c.Match(text)
		if !ok {
			label = c.Other
		}
		byLabel[label] = append(byLabel[label], text)
	}

	out := make(ThemeBuckets, 0, len(byLabel))
	for _, th := range c.Themes {
		if texts := byLabel[th.Label]; len(texts) > 0 {
			out = append(out, ThemeBucket{Label: th.Label, Texts: texts})
		}
	}
	if texts := byLabel[c.Other]; len(texts) > 0 {
		out = append(out, ThemeBucket{Label: c.Other, Texts: texts})
	}
	return out
}
