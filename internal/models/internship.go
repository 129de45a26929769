package models

import "time"

// InternshipKind distinguishes on-site placements from remote ones.
type InternshipKind string

const (
	KindOnSite InternshipKind = "ONSITE"
	KindRemote InternshipKind = "REMOTE"
)

// Internship is a student work-placement record tracked through its lifecycle.
// The state, highlighted and reservation_user_id columns are the only fields
// mutated by this service; everything else is owned by the record-edit CRUD
// flows.
type Internship struct {
	ID                string         `db:"id" json:"id"`
	StudentID         string         `db:"student_id" json:"student_id"`
	CompanyID         string         `db:"company_id" json:"company_id"`
	LocationID        string         `db:"location_id" json:"location_id"`
	SetID             string         `db:"set_id" json:"set_id"`
	Classname         string         `db:"classname" json:"classname"`
	Kind              InternshipKind `db:"kind" json:"kind"`
	State             State          `db:"state" json:"state"`
	Highlighted       bool           `db:"highlighted" json:"highlighted"`
	ReservationUserID *string        `db:"reservation_user_id" json:"reservation_user_id,omitempty"`
	JobDescription    string         `db:"job_description" json:"job_description"`
	AdditionalInfo    string         `db:"additional_info" json:"additional_info"`
	Appendix          string         `db:"appendix" json:"appendix"`
	Conclusion        string         `db:"conclusion" json:"conclusion"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// Reserved reports whether an inspector currently owns the internship.
func (i *Internship) Reserved() bool {
	return i.ReservationUserID != nil && *i.ReservationUserID != ""
}

// InternshipFilter captures filtering criteria for listing internships.
type InternshipFilter struct {
	SetID      string
	StudentID  string
	LocationID string
	Classname  string
	State      State
	Reserved   *bool
	ActiveOnly bool
	Page       int
	PageSize   int
}

// InternshipDetail decorates an internship with related counts for the
// detail endpoint.
type InternshipDetail struct {
	Internship
	InspectionCount int `json:"inspection_count"`
	DiaryEntryCount int `json:"diary_entry_count"`
}
