package request

// LoginRequest represents a clerk PIN login
type LoginRequest struct {
	Clerk string `json:"clerk" binding:"max=64"`
	PIN   string `json:"pin" binding:"required,min=4,max=12"`
}
