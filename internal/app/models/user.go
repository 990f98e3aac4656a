package models

import (
	"time"
)

// User defines the account model based on the 'users' table. Wire field
// names follow the mobile client's contract (nom/prenom).
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	LastName  string    `json:"nom" db:"nom" example:"Diop"`
	FirstName string    `json:"prenom" db:"prenom" example:"Awa"`
	Email     string    `json:"email" db:"email" example:"awa.diop@example.com"`
	Password  string    `json:"-" db:"password"` // hashed, never serialized
	Role      Role      `json:"role" db:"role" example:"admin"`
	Photo     *string   `json:"photo" db:"photo" example:"/uploads/photo_1_1700000000000.jpg"` // relative path, nullable
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
