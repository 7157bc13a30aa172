package model

// User mirrors ResponseUser of the user service.
type User struct {
	UserID              string `json:"userId"`
	CPF                 string `json:"cpf"`
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Date                string `json:"date"`
	Role                string `json:"role"`
	Status              string `json:"status"`
	AuthenticatedClient bool   `json:"authenticatedClient"`
	VerifyEmail         bool   `json:"verifyEmail"`
}

// UserSummary mirrors ResponseUsersDto listed on the admin users screen.
type UserSummary struct {
	UserID              string `json:"userId"`
	CPF                 string `json:"cpf"`
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Date                string `json:"date"`
	Role                string `json:"role"`
	AuthenticatedClient string `json:"authenticatedClient"`
	Status              string `json:"status"`
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone" validate:"required,min=8,max=20"`
}

// UpdatePasswordRequest is the configuration form; ConfirmPassword never leaves the BFF.
type UpdatePasswordRequest struct {
	Password        string `json:"password"        validate:"required,password"`
	OldPassword     string `json:"oldPassword"     validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// CPFRequest identifies a user on admin actions.
type CPFRequest struct {
	CPF string `json:"cpf" validate:"required,cpf"`
}

// ThemeRequest selects the UI theme; empty toggles the current one.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"omitempty,oneof=light dark"`
}
