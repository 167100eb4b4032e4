package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnsupportedFormat is returned for directory files that are neither TOML
// nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported directory format")

type tomlFile struct {
	Users []Identity `toml:"users"`
}

// Load reads identities from path. An empty path yields Builtin.
func Load(path string) ([]Identity, error) {
	if strings.TrimSpace(path) == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes directory data. ext selects the format (".toml" or ".json").
func Parse(data []byte, ext string) ([]Identity, error) {
	var entries []Identity
	switch strings.ToLower(ext) {
	case ".toml":
		var file tomlFile
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, fmt.Errorf("decode toml directory: %w", err)
		}
		entries = file.Users
	case ".json":
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode json directory: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return validate(entries)
}

func validate(entries []Identity) ([]Identity, error) {
	out := make([]Identity, 0, len(entries))
	for i, id := range entries {
		id.ID = strings.TrimSpace(id.ID)
		if id.ID == "" {
			return nil, fmt.Errorf("directory entry %d: missing id", i)
		}
		if strings.TrimSpace(id.Label) == "" {
			return nil, fmt.Errorf("directory entry %d (%s): missing label", i, id.ID)
		}
		out = append(out, id)
	}
	return out, nil
}
