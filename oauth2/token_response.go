package oauth2

// TokenTypeBearer is the only token type issued. Clients send the token back
// as "Authorization: Bearer <access_token>".
const TokenTypeBearer = "bearer"

// TokenResponse is the body returned from a successful login, in the shape of
// an RFC 6749 token endpoint response.
type TokenResponse struct {
	// AccessToken is the signed session JWT.
	// Lifespan: ACCESS_TOKEN_EXPIRE_MINUTES, no refresh
	AccessToken string `json:"access_token"`

	// TokenType is always "bearer"
	TokenType string `json:"token_type"`
}

// NewBearerTokenResponse wraps an access token in a bearer TokenResponse
func NewBearerTokenResponse(accessToken string) *TokenResponse {
	return &TokenResponse{
		AccessToken: accessToken,
		TokenType:   TokenTypeBearer,
	}
}
