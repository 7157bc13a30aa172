package model

// TheftReport mirrors RequestTheftDto of the theft service.
type TheftReport struct {
	DateOfTheft     string  `json:"dateOfTheft"     validate:"required,calendardate"`
	TimeOfTheft     string  `json:"timeOfTheft"     validate:"required,datetime=15:04"`
	LocationOfTheft string  `json:"locationOfTheft" validate:"required"`
	TransactionID   string  `json:"transactionId"   validate:"required"`
	AmountLost      float64 `json:"amountLost"      validate:"gte=0"`
	Description     string  `json:"description"     validate:"required"`
}

// Report mirrors ResponseReports listed on the admin reports screen.
type Report struct {
	DateOfTheft      string  `json:"dateOfTheft"`
	TimeOfTheft      string  `json:"timeOfTheft"`
	LocationOfTheft  string  `json:"locationOfTheft"`
	TransactionID    string  `json:"transactionId"`
	AmountLost       float64 `json:"amountLost"`
	Description      string  `json:"description"`
	TimestampOfTheft string  `json:"timestampOfTheft"`
	Status           string  `json:"status"`
}
