package structs

import "time"

// AuthClaims are the claims carried by an access token issued by the auth
// service. Token issuance lives elsewhere; this server only verifies.
type AuthClaims struct {
	Sub   int64     `json:"sub"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	Iat   time.Time `json:"iat"`
	Exp   time.Time `json:"exp"`
}
