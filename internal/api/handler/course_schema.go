package handler

type createCourseRequest struct {
	Title                string  `json:"title"                 validate:"required,max=100"`
	Description          string  `json:"description"           validate:"required"`
	Weeks                int     `json:"weeks"                 validate:"required,gt=0"`
	Tuition              float64 `json:"tuition"               validate:"required,gt=0"`
	MinimumSkill         string  `json:"minimum_skill"         validate:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool    `json:"scholarship_available"`
}

type updateCourseRequest struct {
	Title                *string  `json:"title"                 validate:"omitempty,max=100"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks"                 validate:"omitempty,gt=0"`
	Tuition              *float64 `json:"tuition"               validate:"omitempty,gt=0"`
	MinimumSkill         *string  `json:"minimum_skill"         validate:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool    `json:"scholarship_available"`
}
