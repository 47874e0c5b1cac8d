package handler

type createBootcampRequest struct {
	Name          string   `json:"name"           validate:"required,max=50"`
	Description   string   `json:"description"    validate:"required,max=500"`
	Website       string   `json:"website"        validate:"omitempty,url"`
	Phone         string   `json:"phone"          validate:"omitempty,max=20"`
	Email         string   `json:"email"          validate:"omitempty,email"`
	Address       string   `json:"address"        validate:"required"`
	Careers       []string `json:"careers"        validate:"required,min=1"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGI      bool     `json:"accept_gi"`
}

type updateBootcampRequest struct {
	Name          *string  `json:"name"           validate:"omitempty,max=50"`
	Description   *string  `json:"description"    validate:"omitempty,max=500"`
	Website       *string  `json:"website"        validate:"omitempty,url"`
	Phone         *string  `json:"phone"          validate:"omitempty,max=20"`
	Email         *string  `json:"email"          validate:"omitempty,email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"        validate:"omitempty,min=1"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGI      *bool    `json:"accept_gi"`
}

type photoResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}
