package models

import "time"

// DiaryEntry is a dated free-text note a student keeps during the placement.
type DiaryEntry struct {
	ID           string    `db:"id" json:"id"`
	InternshipID string    `db:"internship_id" json:"internship_id"`
	UserID       string    `db:"user_id" json:"user_id"`
	Date         time.Time `db:"date" json:"date"`
	Text         string    `db:"text" json:"text"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
