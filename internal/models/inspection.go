package models

import "time"

// InspectionResult enumerates the recorded outcome of a placement visit.
type InspectionResult string

const (
	InspectionOK              InspectionResult = "OK"
	InspectionProblems        InspectionResult = "PROBLEMS"
	InspectionStudentAbsent   InspectionResult = "STUDENT_ABSENT"
	InspectionEmployerUnaware InspectionResult = "EMPLOYER_UNAWARE"
	InspectionUnknown         InspectionResult = "UNKNOWN"
)

// AllInspectionResults lists every result value in report order. The
// per-result summary emits one row per entry, including zero counts.
var AllInspectionResults = []InspectionResult{
	InspectionOK,
	InspectionProblems,
	InspectionStudentAbsent,
	InspectionEmployerUnaware,
	InspectionUnknown,
}

var inspectionResultLabels = map[InspectionResult]string{
	InspectionOK:              "No problems found",
	InspectionProblems:        "Problems found",
	InspectionStudentAbsent:   "Student not present",
	InspectionEmployerUnaware: "Employer unaware of placement",
	InspectionUnknown:         "Unknown",
}

// Label returns the human-readable description of the result.
func (r InspectionResult) Label() string {
	if label, ok := inspectionResultLabels[r]; ok {
		return label
	}
	return string(r)
}

// Valid reports whether the value is part of the enumeration.
func (r InspectionResult) Valid() bool {
	_, ok := inspectionResultLabels[r]
	return ok
}

// Inspection is an immutable record of a teacher checking on a placement.
// Only its creator may delete it.
type Inspection struct {
	ID           string           `db:"id" json:"id"`
	InternshipID string           `db:"internship_id" json:"internship_id"`
	UserID       string           `db:"user_id" json:"user_id"`
	Date         time.Time        `db:"date" json:"date"`
	Result       InspectionResult `db:"result" json:"result"`
	Kind         string           `db:"kind" json:"kind"`
	Note         string           `db:"note" json:"note"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}
