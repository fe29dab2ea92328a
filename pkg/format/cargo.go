package format

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// cargoManifest mirrors the parts of a Cargo.toml we care about.
type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Dependencies      map[string]toml.Primitive `toml:"dependencies"`
	DevDependencies   map[string]toml.Primitive `toml:"dev-dependencies"`
	BuildDependencies map[string]toml.Primitive `toml:"build-dependencies"`
}

// parseCargo reads a Cargo.toml manifest into a one-level graph: the package
// as root node, one node per dependency, and an edge from the package to
// each dependency. Dev and build dependencies get a matching edge label and
// node type. Dependency versions land in a "version" attribute when the
// manifest states one.
func parseCargo(data []byte) (*depgraph.Graph, error) {
	var manifest cargoManifest
	meta, err := toml.Decode(string(data), &manifest)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid Cargo.toml")
	}
	if manifest.Package.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "Cargo.toml has no [package] name")
	}

	g := depgraph.New()
	g.ID = manifest.Package.Name
	root := depgraph.NewNodeInfo("")
	if manifest.Package.Version != "" {
		root.Attrs = depgraph.NewAttrs()
		root.Attrs.Set("version", manifest.Package.Version)
	}
	g.AddNode(manifest.Package.Name, root)

	sections := []struct {
		deps map[string]toml.Primitive
		kind string
	}{
		{manifest.Dependencies, ""},
		{manifest.DevDependencies, "dev"},
		{manifest.BuildDependencies, "build"},
	}
	for _, section := range sections {
		for _, name := range sortedKeys(section.deps) {
			info := depgraph.NewNodeInfo("")
			info.Type = section.kind
			if version := cargoVersion(meta, section.deps[name]); version != "" {
				info.Attrs = depgraph.NewAttrs()
				info.Attrs.Set("version", version)
			}
			g.AddNode(name, info)
			e := depgraph.NewEdge(manifest.Package.Name, name)
			e.Label = section.kind
			g.AddEdge(e)
		}
	}
	return g, nil
}

func sortedKeys(m map[string]toml.Primitive) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cargoVersion extracts the requirement from either form a dependency takes:
// a bare version string or a detail table with a version key.
func cargoVersion(meta toml.MetaData, prim toml.Primitive) string {
	var version string
	if err := meta.PrimitiveDecode(prim, &version); err == nil {
		return version
	}
	var detail struct {
		Version string `toml:"version"`
	}
	if err := meta.PrimitiveDecode(prim, &detail); err == nil {
		return detail.Version
	}
	return ""
}
