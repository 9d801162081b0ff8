// Package clientconfig loads the submit tool's profile file.
package clientconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile configures the client side of the submission path.
type Profile struct {
	// ConfigURL points at the remote configuration document supplying the
	// order endpoint; empty means no configuration source is available.
	ConfigURL string `yaml:"configUrl"`
	// DefaultEndpoint is the declared fallback endpoint.
	DefaultEndpoint string `yaml:"defaultEndpoint"`
	// DraftDB is the path of the local draft database.
	DraftDB string `yaml:"draftDb"`
	// Secure marks the client context as HTTPS-served, upgrading plain http
	// endpoints.
	Secure bool `yaml:"secure"`
}

// Load reads a Profile from path, applying defaults for absent fields.
func Load(path string) (Profile, error) {
	p := Profile{DraftDB: "storefront.db"}
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	if p.DraftDB == "" {
		p.DraftDB = "storefront.db"
	}
	return p, nil
}
