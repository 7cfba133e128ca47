package domain

// User is the identity record Supabase embeds in a session.
type User struct {
	ID           string         `json:"id"`
	Email        string         `json:"email"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// EmailVerified reports whether the identity provider marked the email as verified.
func (u User) EmailVerified() bool {
	v, _ := u.UserMetadata["email_verified"].(bool)
	return v
}

// Name returns the display name from user metadata, falling back to the email.
func (u User) Name() string {
	if name, ok := u.UserMetadata["name"].(string); ok && name != "" {
		return name
	}
	return u.Email
}

// Picture returns the avatar URL from user metadata, if any.
func (u User) Picture() string {
	picture, _ := u.UserMetadata["picture"].(string)
	return picture
}

// Session is the local record of one authenticated browser session.
// It is stored whole or not at all: a partially built session never
// reaches the session store.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}
