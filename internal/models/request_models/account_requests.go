package request_models

type SignUpRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country" binding:"omitempty,oneof=UAE India"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	VerificationCode string `json:"verificationCode" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest covers the mutable account fields; empty fields
// keep their current value.
type UpdateProfileRequest struct {
	Name     string `json:"name" binding:"omitempty,max=50"`
	Avatar   string `json:"avatar"`
	Currency string `json:"currency" binding:"omitempty,len=3"`
	Country  string `json:"country" binding:"omitempty,oneof=UAE India"`
}
