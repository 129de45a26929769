package models

// SummaryFilter scopes the oversight reports by an optional cohort and the
// active-only flag.
type SummaryFilter struct {
	SetID      *string
	ActiveOnly bool
}

// ClassroomSummary counts internships and distinct students per classname.
type ClassroomSummary struct {
	Classname        string `db:"classname" json:"classname"`
	TotalInternships int    `db:"total_internships" json:"total_internships"`
	UniqueStudents   int    `db:"unique_students" json:"unique_students"`
}

// CompanySummary counts students placed per company.
type CompanySummary struct {
	CompanyID     string `db:"company_id" json:"company_id"`
	CompanyName   string `db:"company_name" json:"company_name"`
	TotalStudents int    `db:"total_students" json:"total_students"`
}

// KindSummary counts internships per kind.
type KindSummary struct {
	Kind  InternshipKind `db:"kind" json:"kind"`
	Count int            `db:"count" json:"count"`
}

// InspectorSummary counts inspections logged per teacher.
type InspectorSummary struct {
	InspectorID string `db:"inspector_id" json:"inspector_id"`
	Name        string `db:"name" json:"name"`
	Count       int    `db:"count" json:"count"`
}

// ReservationSummary counts internships currently reserved per teacher.
type ReservationSummary struct {
	InspectorID string `db:"inspector_id" json:"inspector_id"`
	Name        string `db:"name" json:"name"`
	Count       int    `db:"count" json:"count"`
}

// ResultSummary counts inspections per result value. The report always
// contains one row per enumerated result, zero counts included.
type ResultSummary struct {
	Result InspectionResult `db:"result" json:"result"`
	Label  string           `json:"label"`
	Count  int              `db:"count" json:"count"`
}
