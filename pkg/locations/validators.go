package locations

type ListLocationsQuery struct {
	Limit  int `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Offset int `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type CreateLocationPayload struct {
	Name    string `json:"name" mod:"trim" validate:"required,max=100"`
	Address string `json:"address" mod:"trim" validate:"max=255"`
}

type UpdateLocationPayload struct {
	Name    *string `json:"name,omitempty" mod:"trim" validate:"omitempty,min=1,max=100"`
	Address *string `json:"address,omitempty" mod:"trim" validate:"omitempty,max=255"`
}
