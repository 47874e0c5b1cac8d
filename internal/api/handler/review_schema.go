package handler

type createReviewRequest struct {
	Title  string `json:"title"  validate:"required,max=100"`
	Text   string `json:"text"   validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=10"`
}

type updateReviewRequest struct {
	Title  *string `json:"title"  validate:"omitempty,max=100"`
	Text   *string `json:"text"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=10"`
}
