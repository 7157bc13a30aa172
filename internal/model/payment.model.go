package model

const (
	PaymentSend    = "SEND"
	PaymentReceive = "RECEIVE"
)

// Wallet mirrors ResponseWallet of the wallet service.
type Wallet struct {
	Balance float64 `json:"balance"`
}

// Payment mirrors ResponsePayments; TimeStamp is "yyyy-MM-dd HH:mm".
type Payment struct {
	UserSend      string  `json:"userSend"`
	UserReceive   string  `json:"userReceive"`
	Money         float64 `json:"money"`
	SendOrReceive string  `json:"sendOrReceive"`
	TimeStamp     string  `json:"timeStamp"`
}

// PaymentRequest is a PIX or credit card transfer to the owner of Key.
type PaymentRequest struct {
	Money       float64 `json:"money"       validate:"required,gt=0"`
	Key         string  `json:"key"         validate:"required"`
	PixOrCredit string  `json:"pixOrCredit" validate:"required,oneof=PIX CREDIT"`
}

// CreditPaymentRequest pays the credit card invoice.
type CreditPaymentRequest struct {
	Money float64 `json:"money" validate:"required,gt=0"`
}

// Statement is the payments view-model: balances and the merged history.
type Statement struct {
	Wallet      Wallet    `json:"wallet"`
	CreditLimit float64   `json:"creditLimit"`
	Payments    []Payment `json:"payments"`
}
