package models

// RegisterRequest is the body of POST /api/user/register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the body of POST /api/user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login. Token is the signed
// bearer credential that must be presented on every authenticated request.
type LoginResponse struct {
	Token   string      `json:"token"`
	Profile UserProfile `json:"profile"`
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}
