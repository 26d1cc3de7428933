package postgres

import "fmt"

// TableNames holds dynamically prefixed table names.
// Prefixes isolate dev/test/prod data inside a single Supabase project.
type TableNames struct {
	Folders string
	Notes   string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders: fmt.Sprintf("%sfolders", prefix),
		Notes:   fmt.Sprintf("%snotes", prefix),
	}
}
