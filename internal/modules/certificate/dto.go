package certificate

type UpsertRequest struct {
	CertificateSerial string `json:"certificateSerial" validate:"required"`
	PassportNumber    string `json:"passportNumber" validate:"required"`
	HolderName        string `json:"holderName"`
	Occupation        string `json:"occupation"`
	IssueDate         string `json:"issueDate"`
	ExpiryDate        string `json:"expiryDate"`
	Status            string `json:"status"`
}

type VerifyData struct {
	HolderName        string  `json:"holderName"`
	Occupation        string  `json:"occupation"`
	CertificateSerial string  `json:"certificateSerial"`
	PassportNumber    string  `json:"passportNumber"`
	IssueDate         *string `json:"issueDate"`
	ExpiryDate        *string `json:"expiryDate"`
}

type VerifyResponse struct {
	Valid   bool        `json:"valid"`
	Message string      `json:"message,omitempty"`
	Status  string      `json:"status,omitempty"`
	Data    *VerifyData `json:"data,omitempty"`
}
