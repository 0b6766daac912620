package session

import (
	"fmt"

	"github.com/dmitrijs2005/hustleadmin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what the console knows about the signed-in administrator.
type Identity struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IdentityFromToken reads the email claim of a JWT bearer token. The
// signature is not verified; the backend does that on every request.
func IdentityFromToken(token string) (Identity, error) {
	c := &claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, c); err != nil {
		return Identity{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	return Identity{Email: c.Email}, nil
}
