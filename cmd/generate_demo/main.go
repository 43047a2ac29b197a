// Command generate_demo creates a demo catalogue of public domain books.
// Usage: go run ./cmd/generate_demo [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/services"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo catalogue at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	catalogue := services.NewCatalogueService(db.Books(), nil, audit.NewService(db.Audit()))

	for _, input := range publicDomainBooks() {
		book, err := catalogue.Create(input)
		if err != nil {
			log.Printf("Failed to save book %s: %v", input.Name, err)
			continue
		}
		log.Printf("Saved: %s by %s (%s)", book.Name, book.Author, book.Genre)
	}

	log.Println("Demo catalogue generated successfully!")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func publicDomainBooks() []services.BookInput {
	return []services.BookInput{
		{Name: "The Time Machine", Author: "H. G. Wells", PublicationDate: date(1895, time.May, 7), Genre: entities.GenreScienceFiction},
		{Name: "The War of the Worlds", Author: "H. G. Wells", PublicationDate: date(1898, time.January, 1), Genre: entities.GenreScienceFiction},
		{Name: "Twenty Thousand Leagues Under the Seas", Author: "Jules Verne", PublicationDate: date(1870, time.June, 20), Genre: entities.GenreScienceFiction},
		{Name: "Frankenstein", Author: "Mary Shelley", PublicationDate: date(1818, time.January, 1), Genre: entities.GenreScienceFiction},
		{Name: "The Hound of the Baskervilles", Author: "Arthur Conan Doyle", PublicationDate: date(1902, time.April, 1), Genre: entities.GenreMystery},
		{Name: "The Moonstone", Author: "Wilkie Collins", PublicationDate: date(1868, time.January, 1), Genre: entities.GenreMystery},
		{Name: "The Mysterious Affair at Styles", Author: "Agatha Christie", PublicationDate: date(1920, time.October, 1), Genre: entities.GenreMystery},
		{Name: "The Wonderful Wizard of Oz", Author: "L. Frank Baum", PublicationDate: date(1900, time.May, 17), Genre: entities.GenreFantasy},
		{Name: "Alice's Adventures in Wonderland", Author: "Lewis Carroll", PublicationDate: date(1865, time.November, 26), Genre: entities.GenreFantasy},
		{Name: "Phantastes", Author: "George MacDonald", PublicationDate: date(1858, time.January, 1), Genre: entities.GenreFantasy},
	}
}
