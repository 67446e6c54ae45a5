// Package serverconfig reads and writes the persisted MCP server
// configuration file (mcp-config.json).
package serverconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FormatVersion is written to every configuration file.
const FormatVersion = "1.0.0"

// FileName is the base name of the configuration file and of each backup.
const FileName = "mcp-config.json"

// Server is the persisted record for one installed MCP server.
type Server struct {
	Package     string    `json:"package"`
	Version     string    `json:"version"`
	Enabled     bool      `json:"enabled"`
	InstalledAt time.Time `json:"installedAt"`
}

// File is the whole configuration document, keyed by server display name.
type File struct {
	Servers     map[string]Server `json:"servers"`
	Version     string            `json:"version"`
	LastUpdated int64             `json:"lastUpdated"`
}

// New returns an empty configuration stamped with the given time.
func New(now time.Time) *File {
	return &File{
		Servers:     make(map[string]Server),
		Version:     FormatVersion,
		LastUpdated: now.UnixMilli(),
	}
}

// Add records an enabled server under its display name.
func (f *File) Add(name, pkg, version string, installedAt time.Time) {
	if f.Servers == nil {
		f.Servers = make(map[string]Server)
	}
	f.Servers[name] = Server{
		Package:     pkg,
		Version:     version,
		Enabled:     true,
		InstalledAt: installedAt.UTC(),
	}
}

// Load reads the configuration file. A missing file yields an empty
// configuration rather than an error.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Servers: make(map[string]Server)}, nil
		}
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.Servers == nil {
		f.Servers = make(map[string]Server)
	}
	return &f, nil
}

// Save overwrites the configuration file wholesale, creating its directory.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
