package model

import "strings"

// SymbolMapping is the external, read-only table driving literal
// substitution: role (column name) → symbolic value → replacement literal.
// Roles and symbols are matched case-insensitively because the source
// domain (SQL identifiers) is case-insensitive. The engine never mutates
// the table, so a single instance is safe to share across workers.
type SymbolMapping map[string]map[string]string

// Role returns the symbol table for a role name, matched case-insensitively.
func (sm SymbolMapping) Role(name string) (map[string]string, bool) {
	if symbols, ok := sm[name]; ok {
		return symbols, true
	}

	for role, symbols := range sm {
		if strings.EqualFold(role, name) {
			return symbols, true
		}
	}

	return nil, false
}
