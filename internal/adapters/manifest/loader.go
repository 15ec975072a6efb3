// Package manifest provides the pakt.yaml loader and writer.
package manifest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pakt/internal/core/domain"
	"go.trai.ch/pakt/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	sectionDependencies    = "dependencies"
	sectionDevDependencies = "devDependencies"
)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load parses dir's pakt.yaml. Dependency declarations keep the order they
// appear in the file, which is what makes repeated resolutions
// deterministic.
func (l *Loader) Load(dir string) (*domain.Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)

	// #nosec G304 -- path is constructed from the caller's project directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
	}

	root := documentRoot(&doc)
	if root == nil {
		// Empty file: treat as a manifest with no declarations.
		return &domain.Manifest{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	m := &domain.Manifest{}
	if node := findMapValue(root, "name"); node != nil {
		m.Name = node.Value
	}

	m.Dependencies, err = decodeDependencies(findMapValue(root, sectionDependencies))
	if err != nil {
		return nil, zerr.With(err, "section", sectionDependencies)
	}

	m.DevDependencies, err = decodeDependencies(findMapValue(root, sectionDevDependencies))
	if err != nil {
		return nil, zerr.With(err, "section", sectionDevDependencies)
	}

	return m, nil
}

// AddDependency declares name at rng in dir's pakt.yaml, creating the file
// when none exists. Existing declarations, ordering, and comments are
// preserved by editing the YAML document tree rather than re-marshaling a
// struct.
func (l *Loader) AddDependency(dir, name, rng string, dev bool) error {
	path := filepath.Join(dir, domain.ManifestFileName)

	var doc yaml.Node

	// #nosec G304 -- path is constructed from the caller's project directory
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return zerr.Wrap(err, domain.ErrManifestParseFailed.Error())
		}
	case errors.Is(err, fs.ErrNotExist):
		// New project: start a manifest named after the directory.
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			abs = dir
		}
		doc = newManifestDocument(filepath.Base(abs))
	default:
		return zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}

	root := documentRoot(&doc)
	if root == nil {
		doc = newManifestDocument("")
		root = documentRoot(&doc)
	}
	if root.Kind != yaml.MappingNode {
		return zerr.With(domain.ErrManifestParseFailed, "path", path)
	}

	section := sectionDependencies
	if dev {
		section = sectionDevDependencies
	}
	upsertScalar(ensureMapping(root, section), name, rng)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if err := atomicWriteFile(path, buf.Bytes()); err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	return nil
}

// documentRoot unwraps a parsed document node down to its content mapping.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	if doc.Kind == 0 {
		return nil
	}
	return doc
}

// findMapValue returns the value node for key in a mapping, or nil.
func findMapValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// ensureMapping returns the mapping node for key, appending an empty one
// when the key is absent.
func ensureMapping(m *yaml.Node, key string) *yaml.Node {
	if node := findMapValue(m, key); node != nil {
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			// "dependencies:" with no entries parses as null; convert in place.
			node.Kind = yaml.MappingNode
			node.Tag = "!!map"
			node.Value = ""
		}
		return node
	}

	value := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	m.Content = append(m.Content, scalarNode(key), value)
	return value
}

// upsertScalar sets key to value in a mapping, replacing an existing entry
// in place so declaration order is preserved.
func upsertScalar(m *yaml.Node, key, value string) {
	if node := findMapValue(m, key); node != nil {
		node.Kind = yaml.ScalarNode
		node.Tag = "!!str"
		node.Value = value
		node.Content = nil
		return
	}
	m.Content = append(m.Content, scalarNode(key), scalarNode(value))
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// newManifestDocument builds a minimal manifest document tree.
func newManifestDocument(name string) yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if name != "" {
		root.Content = append(root.Content, scalarNode("name"), scalarNode(name))
	}
	return yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{root},
	}
}

// decodeDependencies converts a dependencies mapping node into an ordered set.
func decodeDependencies(node *yaml.Node) (domain.DependencySet, error) {
	if node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, domain.ErrManifestParseFailed
	}

	deps := make(domain.DependencySet, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		deps = append(deps, domain.Dependency{
			Name:  node.Content[i].Value,
			Range: node.Content[i+1].Value,
		})
	}
	return deps, nil
}

// atomicWriteFile writes data to a temp file in the target directory and
// renames it over path, so readers never see a partial manifest.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".pakt-manifest-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
