package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownSet = errors.New("unknown set")
	ErrUnknownEra = errors.New("unknown era")
)

// Paths helper for default/set/era files inside the rules filesystem.
type Paths struct{}

func (Paths) DefaultPath() string {
	return "default.yaml"
}
func (Paths) SetPath(set string) string {
	return path.Join("sets", set+".yaml")
}
func (Paths) EraPath(set, era string) string {
	return path.Join("sets", set, "eras", era+".yaml")
}

// Loader reads YAML rule tables and merges default → set → era.
type Loader struct {
	fsys  fs.FS
	paths Paths

	mu       sync.RWMutex
	cache    map[string]RawConfig // key: "set" or "set/era"
	resolved map[string]*RuleSet
}

// NewLoader creates a loader over fsys. Use Embedded() for the built-in tables
// or os.DirFS for a directory on disk.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{
		fsys:     fsys,
		cache:    make(map[string]RawConfig),
		resolved: make(map[string]*RuleSet),
	}
}

// LoadMerged loads and merges default → set → era (era optional).
// It returns the merged RawConfig without validation.
func (l *Loader) LoadMerged(set, era string) (RawConfig, error) {
	key := cacheKey(set, era)
	l.mu.RLock()
	if cfg, ok := l.cache[key]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defDoc, err := l.readDoc(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	setDoc, err := l.readDoc(l.paths.SetPath(set))
	if err != nil {
		return RawConfig{}, fmt.Errorf("read set %s: %w", set, err)
	}
	if setDoc == nil {
		return RawConfig{}, fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}

	merged := mergeDocs(defDoc, setDoc)
	if era != "" {
		var base RawConfig
		if err := decodeDoc(merged, &base); err != nil {
			return RawConfig{}, fmt.Errorf("decode set %s: %w", set, err)
		}
		if !hasEra(base, era) {
			return RawConfig{}, fmt.Errorf("%w: %q for set %s", ErrUnknownEra, era, set)
		}
		// era file optional; an era without one keeps the set baselines
		eraDoc, err := l.readDoc(l.paths.EraPath(set, era))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read era %s/%s: %w", set, era, err)
		}
		merged = mergeDocs(merged, eraDoc)
		merged["era"] = era
	}

	var cfg RawConfig
	if err := decodeDoc(merged, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("decode %s: %w", key, err)
	}
	if cfg.Era == "" {
		cfg.Era = cfg.DefaultEra
	}

	l.mu.Lock()
	l.cache[key] = cfg
	l.mu.Unlock()

	return cfg, nil
}

// Sets lists the set ids available in the filesystem, sorted.
func (l *Loader) Sets() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, "sets")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
	l.resolved = make(map[string]*RuleSet)
}

func cacheKey(set, era string) string {
	if era == "" {
		return set
	}
	return set + "/" + era
}

func hasEra(cfg RawConfig, era string) bool {
	if era == cfg.DefaultEra {
		return true
	}
	for _, e := range cfg.Eras {
		if e == era {
			return true
		}
	}
	return false
}

// readDoc loads a YAML file into a generic document. Missing files return nil, no error.
func (l *Loader) readDoc(p string) (map[string]any, error) {
	b, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return doc, nil
}

// decodeDoc round-trips a merged document into a typed config, rejecting
// keys the schema does not know.
func decodeDoc(doc map[string]any, out any) error {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// mergeDocs performs a deep merge: 'b' overrides 'a' key by key.
// Nested mappings merge recursively; lists and scalars in 'b' replace 'a'.
func mergeDocs(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, bv := range b {
		am, aIsMap := out[k].(map[string]any)
		bm, bIsMap := bv.(map[string]any)
		if aIsMap && bIsMap {
			out[k] = mergeDocs(am, bm)
			continue
		}
		out[k] = bv
	}
	return out
}
