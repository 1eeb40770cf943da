package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceKind says where an effective value came from.
type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
	SourceEnv     SourceKind = "env"
	SourceFlag    SourceKind = "flag"
)

// Source locates the last writer of a key. File sources carry a position,
// env and flag sources carry the variable or flag name.
type Source struct {
	Kind   SourceKind
	Name   string
	File   string
	Line   int
	Column int
}

type LoadResult struct {
	Config *Config
	// Sources maps dotted keys such as "window.title" to their writer.
	Sources map[string]Source
	// Files lists every file read, includes before their includer.
	Files []string
}

// DefaultConfigPath is $XDG_CONFIG_HOME/winloop/config.yaml, falling back to
// ~/.config.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "winloop", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	return filepath.Join(home, ".config", "winloop", "config.yaml"), nil
}

// Load reads the configuration from the default path, applies environment
// overrides and validates the result.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load that also reports where every value came from.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and everything it includes. A missing file yields
// the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	merged := newLayer()

	_, err := os.Stat(path)
	switch {
	case err == nil:
		l := &fileLoader{visited: make(map[string]bool)}
		top, err := l.load(path)
		if err != nil {
			return nil, err
		}
		merged.apply(top)
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := BuildEffectiveConfig(merged.raw)
	if err := applyEnv(cfg, merged.sources); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, merged.sources)
	}
	return &LoadResult{Config: cfg, Sources: merged.sources, Files: merged.files}, nil
}

// layer is one file merged with everything it includes.
type layer struct {
	raw     RawConfig
	sources map[string]Source
	files   []string
}

func newLayer() layer {
	return layer{sources: make(map[string]Source)}
}

// apply puts other on top of l.
func (l *layer) apply(other layer) {
	l.raw = l.raw.merge(other.raw)
	maps.Copy(l.sources, other.sources)
	l.files = append(l.files, other.files...)
}

// fileLoader reads a config file depth first: its includes are applied in
// order, then the file itself. A file reached twice is read once; a file
// that includes itself, directly or not, is an error.
type fileLoader struct {
	visited map[string]bool
	chain   []string
}

func (fl *fileLoader) load(path string) (layer, error) {
	canon := canonicalPath(path)
	if slices.Contains(fl.chain, canon) {
		cycle := append(slices.Clone(fl.chain), canon)
		return layer{}, fmt.Errorf("config: include cycle: %s", strings.Join(cycle, " -> "))
	}
	if fl.visited[canon] {
		return newLayer(), nil
	}
	fl.visited[canon] = true

	data, err := os.ReadFile(canon)
	if err != nil {
		return layer{}, fmt.Errorf("config %s: %w", canon, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return layer{}, fmt.Errorf("config %s: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrict(data, &raw); err != nil {
		return layer{}, fmt.Errorf("config %s: %w", canon, err)
	}
	root := topMapping(&doc)

	out := newLayer()
	fl.chain = append(fl.chain, canon)
	for _, inc := range includeEntries(root, canon) {
		targets, err := resolveInclude(canon, inc.path)
		if err != nil {
			return layer{}, fmt.Errorf("%s:%d:%d: include %q: %w", inc.at.File, inc.at.Line, inc.at.Column, inc.path, err)
		}
		for _, target := range targets {
			sub, err := fl.load(target)
			if err != nil {
				return layer{}, err
			}
			out.apply(sub)
		}
	}
	fl.chain = fl.chain[:len(fl.chain)-1]

	own := layer{raw: raw, sources: make(map[string]Source), files: []string{canon}}
	recordPositions(root, canon, "", own.sources)
	out.apply(own)
	return out, nil
}

// decodeStrict rejects keys winloop does not know. An empty document is
// not an error.
func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// canonicalPath resolves symlinks where possible so a file is recognised
// however it is reached.
func canonicalPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

// resolveInclude turns an include value into files. Relative paths are
// taken from the including file's directory, "~/" from the home directory.
// A directory contributes its *.yaml and *.yml files in name order.
func resolveInclude(from, include string) ([]string, error) {
	if include == "" {
		return nil, errors.New("empty path")
	}
	if include == "~" || strings.HasPrefix(include, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		include = filepath.Join(home, strings.TrimPrefix(include, "~"))
	}
	if !filepath.IsAbs(include) {
		include = filepath.Join(filepath.Dir(from), include)
	}

	info, err := os.Stat(include)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{include}, nil
	}
	entries, err := os.ReadDir(include)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				files = append(files, filepath.Join(include, ent.Name()))
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

func topMapping(doc *yaml.Node) *yaml.Node {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

func fileSource(file string, node *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: node.Line, Column: node.Column}
}

// recordPositions stores the value position of every key under prefix.
// Lists are recorded as a whole.
func recordPositions(node *yaml.Node, file, prefix string, out map[string]Source) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if prefix != "" {
			key = prefix + "." + key
		}
		out[key] = fileSource(file, val)
		recordPositions(val, file, key, out)
	}
}

type includeEntry struct {
	path string
	at   Source
}

// includeEntries reads the top-level include key, a string or a list.
func includeEntries(root *yaml.Node, file string) []includeEntry {
	if root == nil {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "include" {
			continue
		}
		val := root.Content[i+1]
		items := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			items = val.Content
		}
		var out []includeEntry
		for _, item := range items {
			if item.Kind == yaml.ScalarNode {
				out = append(out, includeEntry{path: item.Value, at: fileSource(file, item)})
			}
		}
		return out
	}
	return nil
}

// attachSourceContext fills in the file position, or the environment
// variable, that last wrote each failing key.
func attachSourceContext(err error, sources map[string]Source) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		out := make([]error, 0, len(errs))
		for _, e := range errs {
			out = append(out, attachSourceContext(e, sources))
		}
		return errors.Join(out...)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return err
}
