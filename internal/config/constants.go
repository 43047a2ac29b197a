package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the catalogue database
	DefaultDatabasePath = "./bookshelf.db"

	// DefaultExportDir is where catalogue snapshots are written
	DefaultExportDir = "./exports"
)
