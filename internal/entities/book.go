package entities

import (
	"time"
)

// Book is a single catalogue record. ID and CreatedAt are assigned by the
// store on insert and never change afterwards.
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"index;size:512;not null" json:"name"`
	Author          string    `gorm:"index;size:256;not null" json:"author"`
	PublicationDate time.Time `gorm:"not null" json:"publication_date"`
	Genre           Genre     `gorm:"size:32;not null" json:"genre"`
	CreatedAt       time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// DateOnly truncates t to a calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PublicationDateString formats the publication date numerically (YYYY-MM-DD).
func (b Book) PublicationDateString() string {
	return b.PublicationDate.Format(DateLayout)
}

// DateLayout is the numeric date format used by forms, the CLI and exports.
const DateLayout = "2006-01-02"
