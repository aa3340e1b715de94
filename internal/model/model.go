package model

import "time"

type Contact struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone,omitempty" json:"phone,omitempty"`
	Message   string    `db:"message" json:"message"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Registration struct {
	ID               string    `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	PaperID          string    `db:"paper_id" json:"paperId"`
	PaperTitle       string    `db:"paper_title" json:"paperTitle"`
	Institution      string    `db:"institution" json:"institution"`
	Phone            string    `db:"phone" json:"phone"`
	Email            string    `db:"email" json:"email"`
	Amount           float64   `db:"amount" json:"amount"`
	FeeCategory      string    `db:"fee_category" json:"fee_category"`
	TransactionID    string    `db:"transaction_id" json:"transaction_id"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	JournalName      string    `db:"journal_name,omitempty" json:"journalName,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

type Paper struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Institution  string    `db:"institution" json:"institution"`
	Title        string    `db:"title" json:"title"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	ResearchArea string    `db:"research_area" json:"research_area"`
	Journal      string    `db:"journal" json:"journal"`
	Country      string    `db:"country" json:"country"`
	Filename     string    `db:"filename" json:"filename"`
	Mimetype     string    `db:"mimetype" json:"mimetype"`
	Size         int64     `db:"size" json:"size"`
	FileURL      string    `db:"file_url" json:"fileUrl"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
