package dtos

type SaveResumeRequest struct {
	Content string `json:"content" binding:"required"`
}
