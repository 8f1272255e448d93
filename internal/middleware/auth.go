package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"healthcare-backend/internal/auth"
)

const principalKey = "principal"

// SessionCookie is the cookie checked when no Authorization header is sent.
const SessionCookie = "session"

// LoginRequired verifies the session token and stores the principal on
// the request context. Requests without a valid token get a 401.
func LoginRequired(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				raw = cookie
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in to access this resource"})
			return
		}

		principal, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Please log in to access this resource"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// DoctorRequired rejects requests whose principal is not a doctor.
// Must run after LoginRequired.
func DoctorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); !ok || !p.IsDoctor() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Doctor privileges required."})
			return
		}
		c.Next()
	}
}

// PatientRequired rejects requests whose principal is not a patient.
// Must run after LoginRequired.
func PatientRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); !ok || !p.IsPatient() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Patient privileges required."})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by LoginRequired.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
