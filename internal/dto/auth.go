package dto

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AuthStatusResponse struct {
	IsAdmin bool `json:"is_admin"`
}
