package models

// Company is a read-only collaborator managed elsewhere; the API only joins
// it for names in summaries.
type Company struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Location is a company site where internships take place.
type Location struct {
	ID        string `db:"id" json:"id"`
	CompanyID string `db:"company_id" json:"company_id"`
	Address   string `db:"address" json:"address"`
}
