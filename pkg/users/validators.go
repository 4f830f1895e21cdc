package users

// UpdateMePayload represents the request body for updating the current user.
// Changing the email resets verification.
type UpdateMePayload struct {
	Email    *string `json:"email,omitempty" mod:"trim,lcase" validate:"omitempty,email,max=320"`
	Password *string `json:"password,omitempty" validate:"omitempty,password"`
}
