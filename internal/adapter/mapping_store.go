package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/resew-dev/resew/internal/model"
)

// MappingStore loads the external symbol mapping table.
type MappingStore interface {
	Load(path m.Path) (m.SymbolMapping, error)
}

// LocalMappingStore reads YAML mapping files of the form:
//
//	roles:
//	  Fund:
//	    General: 0
//	    Capital Projects: 1
type LocalMappingStore struct{}

// NewLocalMappingStore constructs a LocalMappingStore.
func NewLocalMappingStore() *LocalMappingStore {
	return &LocalMappingStore{}
}

type mappingFile struct {
	Roles map[string]map[string]any `yaml:"roles"`
}

// Load parses the mapping file at path. Replacement values may be written
// as bare numbers or strings; both are carried as their literal text.
func (s *LocalMappingStore) Load(path m.Path) (m.SymbolMapping, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}

	if len(mf.Roles) == 0 {
		return nil, fmt.Errorf("mapping file %s defines no roles", path)
	}

	mapping := make(m.SymbolMapping, len(mf.Roles))

	for role, symbols := range mf.Roles {
		table := make(map[string]string, len(symbols))
		for symbol, value := range symbols {
			table[symbol] = fmt.Sprintf("%v", value)
		}

		mapping[role] = table
	}

	return mapping, nil
}
