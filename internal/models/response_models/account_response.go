package response_models

type LoginResponse struct {
	Token      string `json:"token"`
	IsVerified bool   `json:"isVerified"`
	Plan       string `json:"plan"`
}
