package model

// LoginRequest is the body of the login view and of POST /api/login on the login service.
type LoginRequest struct {
	CPF      string `json:"cpf"      validate:"required,cpf"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is exchanged with the login service on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest mirrors the registration form.
type RegisterRequest struct {
	CPF      string `json:"cpf"      validate:"required,cpf"`
	FullName string `json:"fullName" validate:"required,min=3,max=100"`
	Email    string `json:"email"    validate:"required,email,gmail"`
	Password string `json:"password" validate:"required,password"`
	Phone    string `json:"phone"    validate:"required,min=8,max=20"`
	Date     string `json:"date"     validate:"required,birthdate"`
}

// EmailQuery carries the email of a pending registration.
type EmailQuery struct {
	Email string `form:"email" validate:"required,email"`
}

// VerifyEmailRequest carries the six digit code sent by email.
type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

// ResendCodeRequest asks the user service for a fresh verification code.
type ResendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// LoginHistory is one entry of the user's login history.
type LoginHistory struct {
	TimeStamp string `json:"timeStamp"`
}

// SessionState describes the current browser session to the front-end.
type SessionState struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"userId,omitempty"`
	Theme         string `json:"theme"`
}
