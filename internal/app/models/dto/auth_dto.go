package dto

// RegisterRequest represents an account registration request
type RegisterRequest struct {
	LastName  string  `json:"nom" binding:"required"`
	FirstName string  `json:"prenom" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role"`
	Photo     *string `json:"photo"`
}

// RegisterResponse represents a successful registration
type RegisterResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message" example:"account created"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token alongside the minimal profile
// fields the client shows after login. The password hash never appears.
type LoginResponse struct {
	Token     string  `json:"token"`
	Role      string  `json:"role"`
	Photo     *string `json:"photo"`
	LastName  string  `json:"nom"`
	FirstName string  `json:"prenom"`
	Email     string  `json:"email"`
}

// ProfileResponse represents the authenticated account's non-secret fields
type ProfileResponse struct {
	ID        int64   `json:"id"`
	LastName  string  `json:"nom"`
	FirstName string  `json:"prenom"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Photo     *string `json:"photo"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	LastName  string  `json:"nom" binding:"required"`
	FirstName string  `json:"prenom" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Photo     *string `json:"photo"`
}

// UpdateEmailRequest represents an email change request
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateEmailResponse echoes the new email on success
type UpdateEmailResponse struct {
	Email string `json:"email"`
}
