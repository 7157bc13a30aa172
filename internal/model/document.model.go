package model

import "mime/multipart"

// Document mirrors ResponseDocuments of the document service.
type Document struct {
	DocumentID  int64  `json:"documentId"`
	RG          string `json:"rg"`
	CPF         string `json:"cpf"`
	AddressFile string `json:"addressFile"`
	IncomeFile  string `json:"incomeFile"`
	Status      string `json:"status"`
}

// CreditDocument mirrors ResponseCreditDocuments of the document service.
type CreditDocument struct {
	CreditDocumentID int64   `json:"creditDocumentId"`
	CPF              string  `json:"cpf"`
	Date             string  `json:"date"`
	Occupation       string  `json:"occupation"`
	Salary           float64 `json:"salary"`
	IncomeFile       string  `json:"incomeFile"`
	Status           string  `json:"status"`
}

// CardDocumentsForm is the multipart card request form.
type CardDocumentsForm struct {
	FullName       string                `form:"fullName"       validate:"required,min=3"`
	RG             string                `form:"rg"             validate:"required"`
	CPF            string                `form:"cpf"            validate:"required,cpf"`
	ProofOfAddress *multipart.FileHeader `form:"proofOfAddress" validate:"required"`
	ProofOfIncome  *multipart.FileHeader `form:"proofOfIncome"  validate:"required"`
}

// CreditDocumentsForm is the multipart credit request form.
type CreditDocumentsForm struct {
	FullName      string                `form:"fullName"      validate:"required,min=3"`
	CPF           string                `form:"cpf"           validate:"required,cpf"`
	Date          string                `form:"date"          validate:"required,birthdate"`
	Occupation    string                `form:"occupation"    validate:"required"`
	Salary        float64               `form:"salary"        validate:"omitempty,gte=0"`
	ProofOfIncome *multipart.FileHeader `form:"proofOfIncome" validate:"required"`
}

// DocumentIDRequest identifies a document on admin review actions.
type DocumentIDRequest struct {
	DocumentID int64 `json:"documentId" validate:"required,gt=0"`
}

// CreditDocumentIDRequest identifies a credit document on admin review actions.
type CreditDocumentIDRequest struct {
	CreditDocumentID int64 `json:"creditDocumentId" validate:"required,gt=0"`
}
