package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"inspectgrid/internal/model"
)

type columnsFile struct {
	Columns []model.Column `json:"columns" toml:"column"`
}

// LoadColumns reads column descriptors from a TOML file ([[column]]
// tables) or JSON (an array, or an object with a "columns" array).
func LoadColumns(path string) ([]model.Column, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	var cf columnsFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(b), &cf); err != nil {
			return nil, fmt.Errorf("columns %s: %w", path, err)
		}
	} else if err := json.Unmarshal(b, &cf.Columns); err != nil {
		if err2 := json.Unmarshal(b, &cf); err2 != nil {
			return nil, fmt.Errorf("columns %s: %w", path, err)
		}
	}
	if err := validate(cf.Columns); err != nil {
		return nil, fmt.Errorf("columns %s: %w", path, err)
	}
	return cf.Columns, nil
}

func validate(cols []model.Column) error {
	if len(cols) == 0 {
		return fmt.Errorf("no columns")
	}
	seen := map[string]bool{}
	for i, c := range cols {
		if strings.TrimSpace(c.ID) == "" {
			return fmt.Errorf("column %d has no id", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate column %q", c.ID)
		}
		seen[c.ID] = true
		if c.Type != "" && !c.Type.Known() {
			return fmt.Errorf("column %q: unknown type %q", c.ID, c.Type)
		}
		if c.Type == "" {
			cols[i].Type = model.TypeString
		}
	}
	return nil
}
