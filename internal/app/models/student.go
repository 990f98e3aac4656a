package models

// Student defines the student model based on the 'etudiant' table.
// Photo holds the stored relative path; the absolute URL is materialized
// per request at the service boundary.
type Student struct {
	ID        int64   `json:"id" db:"id" example:"1"`
	Ine       string  `json:"ine" db:"ine" example:"N12345678901"`
	LastName  string  `json:"nom" db:"nom" example:"Ndiaye"`
	FirstName string  `json:"prenom" db:"prenom" example:"Moussa"`
	Age       int     `json:"age" db:"age" example:"21"`
	Phone     string  `json:"telephone" db:"telephone" example:"771234567"`
	Sexe      string  `json:"sexe" db:"sexe" example:"M"`
	Filiere   string  `json:"filiere" db:"filiere" example:"Informatique"`
	Photo     *string `json:"photo" db:"photo"` // relative path, nullable
}
