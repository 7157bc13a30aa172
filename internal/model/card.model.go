package model

// Card mirrors ResponseUserCard of the card service.
type Card struct {
	FullName       string  `json:"fullName"`
	CardNumber     string  `json:"cardNumber"`
	ExpirationDate string  `json:"expirationDate"`
	CardCVV        string  `json:"cardCvv"`
	LimitCredit    float64 `json:"limitCredit"`
	TypeOfCard     string  `json:"typeOfCard"`
}
