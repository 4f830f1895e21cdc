package authors

type ListAuthorsQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type CreateAuthorPayload struct {
	FullName string `json:"full_name" mod:"trim" validate:"required,max=100"`
}

type UpdateAuthorPayload struct {
	FullName *string `json:"full_name,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
}
