package pickups

type ListPickupsQuery struct {
	Limit  int  `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Offset int  `query:"offset" json:"offset,omitempty" validate:"min=0"`
	BookID *int `query:"book_id" json:"book_id,omitempty" validate:"omitempty,min=1"`
}

type AddPickupPayload struct {
	BookID     int `json:"book_id" validate:"required,min=1"`
	LocationID int `json:"location_id" validate:"required,min=1"`
}
