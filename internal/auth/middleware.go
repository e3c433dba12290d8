package auth

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Verifier turns a bearer token into an identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// Authenticate attaches the caller identity to the request. A missing or bad token
// leaves the caller anonymous, it never fails the request.
func Authenticate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, done := c.Get(identityKey); done {
			c.Next()
			return
		}

		var id *Identity
		if tok, ok := bearerToken(c.GetHeader("Authorization")); ok {
			verified, err := v.Verify(tok)
			if err != nil {
				log.Printf("[DEBUG] anonymous request, %v", err)
			} else {
				id = verified
			}
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// IdentityFrom returns the identity attached by Authenticate, nil for anonymous callers.
func IdentityFrom(c *gin.Context) *Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(header[7:])
	return tok, tok != ""
}
