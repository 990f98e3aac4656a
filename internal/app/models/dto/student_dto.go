package dto

// CreateStudentRequest represents a student creation payload. The photo
// is never part of this call; it is attached afterwards through the
// photo endpoint using the assigned id.
type CreateStudentRequest struct {
	Ine       string `json:"ine" binding:"required"`
	LastName  string `json:"nom" binding:"required"`
	FirstName string `json:"prenom" binding:"required"`
	Age       int    `json:"age"`
	Phone     string `json:"telephone"`
	Sexe      string `json:"sexe"`
	Filiere   string `json:"filiere"`
}

// UpdateStudentRequest is a patch: absent fields keep their current
// value, which is read fresh from the store before merging. The photo
// field here is a relative-path string, not a file upload.
type UpdateStudentRequest struct {
	Ine       *string `json:"ine"`
	LastName  *string `json:"nom"`
	FirstName *string `json:"prenom"`
	Age       *int    `json:"age"`
	Phone     *string `json:"telephone"`
	Sexe      *string `json:"sexe"`
	Filiere   *string `json:"filiere"`
	Photo     *string `json:"photo"`
}

// StudentResponse represents a student record on the wire. Photo is an
// absolute URL derived from the current request's host, or null.
type StudentResponse struct {
	ID        int64   `json:"id"`
	Ine       string  `json:"ine"`
	LastName  string  `json:"nom"`
	FirstName string  `json:"prenom"`
	Age       int     `json:"age"`
	Phone     string  `json:"telephone"`
	Sexe      string  `json:"sexe"`
	Filiere   string  `json:"filiere"`
	Photo     *string `json:"photo"`
}

// PhotoResponse is returned after a photo set/replace operation
type PhotoResponse struct {
	ID    int64  `json:"id"`
	Photo string `json:"photo"`
}
