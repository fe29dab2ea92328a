// Package format converts dependency graphs to and from their textual
// representations: DOT, TGF, Mermaid flowcharts, a canonical JSON codec,
// Cargo.toml manifests (parse only), and Makefile-style depfiles (emit only).
//
// Formats are addressed by name. [Detect] picks one from a file path and a
// content sample, trying the extension first and falling back to content
// heuristics.
package format

import (
	"io"
	"strings"

	"github.com/matzehuels/depgraph/pkg/depgraph"
	"github.com/matzehuels/depgraph/pkg/errors"
)

// Format describes one supported graph representation. A format may support
// parsing, emitting, or both.
type Format struct {
	// Name is the identifier used on the command line, e.g. "dot".
	Name string
	// Extensions lists file extensions (with leading dot) or exact file
	// names ("Cargo.toml") associated with the format.
	Extensions []string

	parse func([]byte) (*depgraph.Graph, error)
	emit  func(io.Writer, *depgraph.Graph) error
}

// CanParse reports whether the format has a parser.
func (f Format) CanParse() bool { return f.parse != nil }

// CanEmit reports whether the format has an emitter.
func (f Format) CanEmit() bool { return f.emit != nil }

// formats is ordered by content-detection priority.
var formats = []Format{
	{
		Name:       "json",
		Extensions: []string{".json"},
		parse:      parseJSON,
		emit:       emitJSON,
	},
	{
		Name:       "mermaid",
		Extensions: []string{".mmd", ".mermaid"},
		parse:      parseMermaid,
		emit:       emitMermaid,
	},
	{
		Name:       "dot",
		Extensions: []string{".dot", ".gv"},
		parse:      parseDOT,
		emit:       emitDOT,
	},
	{
		Name:       "tgf",
		Extensions: []string{".tgf"},
		parse:      parseTGF,
		emit:       emitTGF,
	},
	{
		Name:       "cargo",
		Extensions: []string{"Cargo.toml", ".toml"},
		parse:      parseCargo,
	},
	{
		Name:       "depfile",
		Extensions: []string{".d"},
		emit:       emitDepfile,
	},
}

// Lookup resolves a format by name.
func Lookup(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (supported: %s)", name, strings.Join(Names(), ", "))
}

// Names lists all format names in detection priority order.
func Names() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

// Parse decodes data using the named format.
func Parse(name string, data []byte) (*depgraph.Graph, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if !f.CanParse() {
		return nil, errors.New(errors.ErrCodeUnsupported, "format %q cannot be parsed", name)
	}
	return f.parse(data)
}

// Emit encodes g to w using the named format.
func Emit(name string, w io.Writer, g *depgraph.Graph) error {
	f, err := Lookup(name)
	if err != nil {
		return err
	}
	if !f.CanEmit() {
		return errors.New(errors.ErrCodeUnsupported, "format %q cannot be emitted", name)
	}
	return f.emit(w, g)
}
