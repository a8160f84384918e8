package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/phonemechanic/repair-ledger/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a staff JWT.
type AccessTokenPayload struct {
	Store enums.Store
	Role  enums.StaffRole
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to the counter app. The
// registered ID doubles as the staff session id.
type AccessTokenClaims struct {
	Store enums.Store     `json:"store"`
	Role  enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the session identifier carried in the jti claim.
func (c *AccessTokenClaims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}
