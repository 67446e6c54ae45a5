// Package registry defines the catalog of installable MCP servers: Entry,
// an insertion-ordered Registry, and the integrity checks run before an
// installation.
package registry

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	toml "github.com/pelletier/go-toml/v2"
)

var versionPattern = regexp.MustCompile(`^[0-9A-Za-z_.-]+$`)

// Entry is one installable MCP server package.
type Entry struct {
	// Name is the human-readable display name (e.g. "Memory MCP"). It keys
	// the server in the persisted configuration file.
	Name string `toml:"name"`

	// Package is the package manager identifier (e.g. "@modelcontextprotocol/server-memory").
	Package string `toml:"package"`

	// Version is the pinned version to install.
	Version string `toml:"version"`

	// Description explains what the server provides.
	Description string `toml:"description"`

	// RequiredEnvVars lists environment variables the server needs at runtime.
	RequiredEnvVars []string `toml:"required_env_vars"`

	// Optional entries are skipped unless explicitly requested.
	Optional bool `toml:"optional"`
}

// Spec returns the install argument, "<package>@<version>" or the bare
// package when no version is pinned.
func (e Entry) Spec() string {
	if e.Version == "" {
		return e.Package
	}
	return e.Package + "@" + e.Version
}

// Registry holds catalog entries in insertion order. It is read-only once
// built.
type Registry struct {
	entries []Entry
}

// New creates a Registry holding the given entries in order.
func New(entries ...Entry) *Registry {
	r := &Registry{entries: make([]Entry, len(entries))}
	copy(r.entries, entries)
	return r
}

// All returns every entry in insertion order.
func (r *Registry) All() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ByPackage returns the entry with the given package identifier.
func (r *Registry) ByPackage(pkg string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Package == pkg {
			return e, true
		}
	}
	return Entry{}, false
}

// Required returns every non-optional entry, in insertion order.
func (r *Registry) Required() []Entry {
	return r.filter(func(e Entry) bool { return !e.Optional })
}

// Optional returns every optional entry, in insertion order.
func (r *Registry) Optional() []Entry {
	return r.filter(func(e Entry) bool { return e.Optional })
}

// WithEnvVars returns every entry that needs environment configuration.
func (r *Registry) WithEnvVars() []Entry {
	return r.filter(func(e Entry) bool { return len(e.RequiredEnvVars) > 0 })
}

func (r *Registry) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks registry integrity: unique package identifiers, required
// fields present, and version strings restricted to alphanumerics, dots,
// dashes and underscores. All problems are reported together.
func (r *Registry) Validate() error {
	return ValidateEntries(r.entries)
}

// ValidateEntries applies the registry integrity checks to an arbitrary
// entry list.
func ValidateEntries(entries []Entry) error {
	var errs []error
	seen := make(map[string]bool, len(entries))

	for _, e := range entries {
		if seen[e.Package] {
			errs = append(errs, fmt.Errorf("duplicate package name: %s", e.Package))
		}
		seen[e.Package] = true

		if e.Name == "" || e.Package == "" || e.Version == "" {
			errs = append(errs, fmt.Errorf("server %s missing required fields", e.Package))
		}
		if !versionPattern.MatchString(e.Version) {
			errs = append(errs, fmt.Errorf("server %s has invalid version format: %s", e.Package, e.Version))
		}
	}

	return errors.Join(errs...)
}

type catalogFile struct {
	Servers []Entry `toml:"server"`
}

// LoadFromFile reads a TOML catalog made of [[server]] tables. The result
// is not validated; call Validate before installing from it.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}

	return New(f.Servers...), nil
}
