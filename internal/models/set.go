package models

import "time"

// Set groups internships into a time-boxed cohort sharing placement-period
// parameters. The active flag gates "active only" claims and reports.
type Set struct {
	ID       string    `db:"id" json:"id"`
	Year     int       `db:"year" json:"year"`
	Start    time.Time `db:"start_date" json:"start"`
	End      time.Time `db:"end_date" json:"end"`
	Active   bool      `db:"active" json:"active"`
	Editable bool      `db:"editable" json:"editable"`
}
