package dto

// LoginRequest represents user login data
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jan.kowalski@example.com"`
	Password string `json:"password" binding:"required" example:"Password123!"`
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"jan.kowalski@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"Password123!"`
	FirstName string `json:"firstName" binding:"required" example:"Jan"`
	LastName  string `json:"lastName" binding:"required" example:"Kowalski"`
	RoleType  string `json:"roleType" binding:"required,oneof=STUDENT INSTRUCTOR" example:"STUDENT"`
}

// TokenResponse represents the token payload returned after authentication
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}

// UserResponse represents user details returned by the API
type UserResponse struct {
	ID        int64  `json:"id" example:"42"`
	Email     string `json:"email" example:"jan.kowalski@example.com"`
	FirstName string `json:"firstName" example:"Jan"`
	LastName  string `json:"lastName" example:"Kowalski"`
	RoleType  string `json:"roleType" example:"STUDENT"`
}

// AuthResponse combines the token and user payloads returned on login and
// registration.
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
