package auth

// RegisterPayload represents the registration request body.
type RegisterPayload struct {
	Email    string `json:"email" mod:"trim,lcase" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,password"`
}

// LoginPayload represents the login request body. It's usually sent as an
// OAuth2 password grant form, so the email goes in username.
type LoginPayload struct {
	Username  string `form:"username" json:"username" mod:"trim,lcase" validate:"required"`
	Password  string `form:"password" json:"password" validate:"required"`
	GrantType string `form:"grant_type" json:"grant_type,omitempty" validate:"omitempty,eq=password"`
	Scope     string `form:"scope" json:"scope,omitempty"`
	ClientID  string `form:"client_id" json:"client_id,omitempty"`
}

type EmailPayload struct {
	Email string `json:"email" mod:"trim,lcase" validate:"required,email"`
}

type VerifyPayload struct {
	Token string `json:"token" validate:"required"`
}

type ResetPasswordPayload struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,password"`
}

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
