package dtos

type CoverLetterRequest struct {
	CompanyName    string `json:"company_name" binding:"required"`
	JobTitle       string `json:"job_title" binding:"required"`
	JobDescription string `json:"job_description"`
	Content        string `json:"content"`
}
