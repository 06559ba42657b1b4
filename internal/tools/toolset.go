package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/barbackhq/barback/internal/config"
	"github.com/barbackhq/barback/internal/schema"
)

// Toolset is the generated tool catalogue for a registry, legacy aliases
// included. Databases can be added at runtime; the catalogue is rebuilt
// atomically on each registration.
type Toolset struct {
	registry   *schema.Registry
	generator  *Generator
	aliasTable map[string]string

	mu        sync.RWMutex
	catalogue map[string]Tool
	aliases   map[string]string
}

// ToolsetOption configures a Toolset at construction.
type ToolsetOption func(*Toolset)

// WithAliasTable replaces the built-in legacy alias table. Deployments with
// a custom configuration and no legacy callers pass an empty table.
func WithAliasTable(table map[string]string) ToolsetOption {
	return func(ts *Toolset) { ts.aliasTable = table }
}

// NewToolset generates tools for every database in the registry and layers
// the legacy aliases on top. Construction fails with CompatibilityError
// when an alias in the table has no generated target.
func NewToolset(registry *schema.Registry, generator *Generator, opts ...ToolsetOption) (*Toolset, error) {
	ts := &Toolset{registry: registry, generator: generator, aliasTable: legacyAliases}
	for _, opt := range opts {
		opt(ts)
	}
	if err := ts.regenerate(); err != nil {
		return nil, err
	}
	return ts, nil
}

func (ts *Toolset) regenerate() error {
	catalogue, err := ts.generator.GenerateAll()
	if err != nil {
		return err
	}
	aliases, err := applyAliases(catalogue, ts.aliasTable)
	if err != nil {
		return err
	}

	ts.mu.Lock()
	ts.catalogue = catalogue
	ts.aliases = aliases
	ts.mu.Unlock()
	return nil
}

// Get looks up a tool by its generated name or a legacy alias.
func (ts *Toolset) Get(name string) (Tool, bool) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	tool, ok := ts.catalogue[name]
	return tool, ok
}

// Names returns every callable name in sorted order, aliases included.
func (ts *Toolset) Names() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.catalogue))
	for name := range ts.catalogue {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the generated tools in name order, aliases excluded so the
// listing shows each operation once.
func (ts *Toolset) Tools() []Tool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	names := make([]string, 0, len(ts.catalogue))
	for name := range ts.catalogue {
		if _, isAlias := ts.aliases[name]; isAlias {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		out = append(out, ts.catalogue[name])
	}
	return out
}

// Aliases returns the legacy aliases in effect, alias name to generated
// target.
func (ts *Toolset) Aliases() map[string]string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	out := make(map[string]string, len(ts.aliases))
	for alias, target := range ts.aliases {
		out[alias] = target
	}
	return out
}

// Len reports the number of generated tools, aliases excluded.
func (ts *Toolset) Len() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return len(ts.catalogue) - len(ts.aliases)
}

// AddDatabase registers a database declared as a YAML document at runtime
// and regenerates the catalogue. Existing callers keep working while the
// rebuild is in flight; the swap is atomic.
func (ts *Toolset) AddDatabase(name string, doc []byte) error {
	db, err := config.ParseDatabase(name, doc)
	if err != nil {
		return err
	}
	if _, err := ts.registry.Get(name); err == nil {
		return fmt.Errorf("database %q is already registered", name)
	}
	ts.registry.Register(db)
	return ts.regenerate()
}
