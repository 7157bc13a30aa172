package model

import "github.com/shopspring/decimal"

// Dashboard is the client view-model assembled from several services.
type Dashboard struct {
	User                 User   `json:"user"`
	CardStatus           string `json:"cardStatus"`
	DocumentStatus       string `json:"documentStatus,omitempty"`
	CreditDocumentStatus string `json:"creditDocumentStatus,omitempty"`
	UnreadNotifications  int    `json:"unreadNotifications"`
	Theme                string `json:"theme"`
	OpenViewCard         bool   `json:"openViewCard"`
	OpenAskYourCard      bool   `json:"openAskYourCard"`
}

// LoanRequest is the loan simulation form.
type LoanRequest struct {
	Value         decimal.Decimal `json:"value"         validate:"required,gt=0"`
	Term          int             `json:"term"          validate:"required,gte=1,lte=120"`
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" validate:"required,gt=0"`
}
