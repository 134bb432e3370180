package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/apperrors"
	"github.com/pageza/recipebox/backend/internal/logging"
	"github.com/pageza/recipebox/backend/internal/metrics"
	"github.com/pageza/recipebox/backend/internal/models"
	"github.com/pageza/recipebox/backend/internal/types"
)

const (
	userIDKey = "user_id"
	userKey   = "user"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AccountLookup resolves the account a token was issued to.
type AccountLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Check inspects a resolved account and returns an error to reject the
// request.
type Check func(*models.User) error

// ActiveAccount rejects suspended accounts.
func ActiveAccount(u *models.User) error {
	if u.IsSuspended() {
		return apperrors.Forbidden("Your account has been suspended. Please contact support.")
	}
	return nil
}

// AdminOnly rejects anyone who is not an administrator.
func AdminOnly(u *models.User) error {
	if !u.IsAdmin() {
		return apperrors.Forbidden("Admins only")
	}
	return nil
}

// Gate authenticates the bearer token, resolves the account and runs the
// default checks. The account is re-read on every request so suspension
// and role changes apply immediately.
type Gate struct {
	tokens   TokenValidator
	accounts AccountLookup
	checks   []Check
}

func NewGate(tokens TokenValidator, accounts AccountLookup, checks ...Check) *Gate {
	if len(checks) == 0 {
		checks = []Check{ActiveAccount}
	}
	return &Gate{tokens: tokens, accounts: accounts, checks: checks}
}

// Authenticate is the gate middleware.
func (g *Gate) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			reject(c, "missing_token", apperrors.Unauthorized("Not authorized, token missing"))
			return
		}

		claims, err := g.tokens.ValidateToken(token)
		if err != nil {
			reject(c, "invalid_token", apperrors.Unauthorized("Not authorized, invalid token"))
			return
		}

		user, err := g.accounts.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if apperrors.Is(err, apperrors.KindNotFound) {
				reject(c, "unknown_account", apperrors.Unauthorized("User not found"))
				return
			}
			reject(c, "lookup_failed", err)
			return
		}

		for _, check := range g.checks {
			if err := check(user); err != nil {
				reject(c, reason(err), err)
				return
			}
		}

		c.Set(userIDKey, user.ID)
		c.Set(userKey, user.Redacted())
		c.Next()
	}
}

// Require stacks further checks after Authenticate.
func Require(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			reject(c, "missing_token", apperrors.Unauthorized("Not authorized, token missing"))
			return
		}
		for _, check := range checks {
			if err := check(user); err != nil {
				reject(c, reason(err), err)
				return
			}
		}
		c.Next()
	}
}

// CurrentUser returns the account attached by the gate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// CurrentUserID returns the id attached by the gate.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// bearerToken accepts exactly "Bearer <token>". Anything else counts as no
// token at all.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func reason(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindForbidden:
		return "forbidden"
	case apperrors.KindUnauthorized:
		return "unauthorized"
	default:
		return "error"
	}
}

func reject(c *gin.Context, why string, err error) {
	metrics.GateRejections.WithLabelValues(why).Inc()

	status := StatusFor(err)
	event := logging.Ctx(c.Request.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(c.Request.Context()).Error().Err(err)
	}
	event.Str("reason", why).Str("path", c.FullPath()).Int("status", status).Msg("access gate rejected request")

	c.AbortWithStatusJSON(status, ErrorBody(err))
}
