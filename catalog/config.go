// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/shenwei356/util/pathutil"
)

// ErrNoSuchRegisteredDB means a name wasn't found in the registry.
var ErrNoSuchRegisteredDB = errors.New("catalog: no such registered database")

// Registry is an injected handle to the user's registered-database
// list (the reference implementation's config.py module, kept here as
// an explicit value instead of a module-level global so callers control
// its lifetime and can substitute a test instance).
type Registry struct {
	path    string
	Default string            `json:"default"`
	Paths   map[string]string `json:"databases"`
}

func registryPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "catalog: locating home directory")
	}
	return filepath.Join(home, ".wgskmers", "databases.json"), nil
}

// LoadRegistry reads the user's registered-database list, returning an
// empty Registry if none exists yet.
func LoadRegistry() (*Registry, error) {
	path, err := registryPath()
	if err != nil {
		return nil, err
	}

	reg := &Registry{path: path, Paths: map[string]string{}}

	exists, err := pathutil.Exists(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: checking registry file")
	}
	if !exists {
		return reg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening registry file")
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(reg); err != nil {
		return nil, errors.Wrap(err, "catalog: parsing registry file")
	}
	reg.path = path
	if reg.Paths == nil {
		reg.Paths = map[string]string{}
	}
	return reg, nil
}

// Save persists the registry to disk, creating its parent directory if
// needed.
func (r *Registry) Save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return errors.Wrap(err, "catalog: creating config directory")
	}

	f, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "catalog: writing registry file")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Register adds or replaces a named database path.
func (r *Registry) Register(name, path string) {
	r.Paths[name] = path
}

// Unregister removes a named database, clearing Default if it pointed
// to that name.
func (r *Registry) Unregister(name string) {
	delete(r.Paths, name)
	if r.Default == name {
		r.Default = ""
	}
}

// Get looks up a registered database's path by name.
func (r *Registry) Get(name string) (string, error) {
	path, ok := r.Paths[name]
	if !ok {
		return "", ErrNoSuchRegisteredDB
	}
	return path, nil
}

// SetDefault marks name as the default database. The name must already
// be registered.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.Paths[name]; !ok {
		return ErrNoSuchRegisteredDB
	}
	r.Default = name
	return nil
}

// GetDefault returns the default database's path, or "" if none is set.
func (r *Registry) GetDefault() string {
	if r.Default == "" {
		return ""
	}
	return r.Paths[r.Default]
}
