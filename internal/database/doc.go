// Package database provides the data access layer for the catalogue.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and schema migration
//	├── books/           # Book CRUD operations
//	└── audit/           # Audit trail of catalogue mutations and exports
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./bookshelf.db")
//
//	book := &entities.Book{Name: "Dune", Author: "Frank Herbert", Genre: entities.GenreScienceFiction}
//	err = db.Books().Create(book)
//
//	events, total, err := db.Audit().GetEvents(50, 0)
//
// Repositories report a missing row as gorm.ErrRecordNotFound; translating
// that into domain errors is the job of internal/services.
package database
