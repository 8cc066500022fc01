package laborresult

type CheckQuery struct {
	PassportNumber  string `form:"passportNumber"`
	OccupationKey   string `form:"occupationKey"`
	NationalityCode string `form:"nationalityCode"`
}

type UpsertRequest struct {
	PassportNumber  string `json:"passportNumber" validate:"required"`
	OccupationKey   string `json:"occupationKey" validate:"required"`
	NationalityCode string `json:"nationalityCode" validate:"required"`
	ExamDate        string `json:"examDate"`
	Score           *int   `json:"score" validate:"omitempty,gte=0,lte=100"`
	Result          string `json:"result" validate:"omitempty,oneof=Passed Failed"`
}

type CheckData struct {
	PassportNumber  string  `json:"passportNumber"`
	OccupationKey   string  `json:"occupationKey"`
	NationalityCode string  `json:"nationalityCode"`
	ExamDate        *string `json:"examDate"`
	Score           *int    `json:"score"`
	Result          string  `json:"result"`
}

type CheckResponse struct {
	Found   bool       `json:"found"`
	Message string     `json:"message,omitempty"`
	Data    *CheckData `json:"data,omitempty"`
}
