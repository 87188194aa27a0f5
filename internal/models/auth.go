package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token      string `json:"token"`
	CustomerID int64  `json:"customer_id"`
	Name       string `json:"name"`
	ExpiresIn  string `json:"expires_in"`
}
