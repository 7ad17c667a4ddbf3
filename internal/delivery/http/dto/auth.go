package dto

type SignupRequest struct {
	ProfileUpdateRequest
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

type LoginResponse struct {
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	AccessToken string `json:"access_token"`
}
