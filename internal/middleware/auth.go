package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"peerly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const IdentityKey = "identity"

// IdentityResolver 把 bearer token 解析成调用方身份
type IdentityResolver interface {
	Resolve(token string) (services.Identity, error)
}

// UserOrgLookup 查询用户当前所属组织
type UserOrgLookup interface {
	UserOrg(ctx context.Context, id uint) (uint, error)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"message": message},
	})
}

// AuthRequired 校验 Authorization: Bearer <token>，并确认用户仍属于 token 中的组织
func AuthRequired(resolver IdentityResolver, users UserOrgLookup, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			unauthorized(c, "Malformed Token")
			return
		}

		identity, err := resolver.Resolve(token)
		if err != nil {
			log.WithError(err).Warn("rejected bearer token")
			unauthorized(c, "Unauthorized")
			return
		}

		orgID, err := users.UserOrg(c.Request.Context(), identity.UserID)
		switch {
		case errors.Is(err, services.ErrNotFound):
			log.WithField("user_id", identity.UserID).Warn("token user does not exist")
			unauthorized(c, "Unauthorized")
			return
		case err != nil:
			log.WithError(err).Error("Error while fetching User")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "internal server error"},
			})
			return
		case orgID != identity.OrgID:
			log.WithFields(logrus.Fields{
				"user_id":   identity.UserID,
				"token_org": identity.OrgID,
				"user_org":  orgID,
			}).Warn("Mismatch with user organization and current organization")
			unauthorized(c, "Unauthorized")
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// GetIdentity 读取 AuthRequired 存入的身份
func GetIdentity(c *gin.Context) (services.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return services.Identity{}, false
	}
	identity, ok := v.(services.Identity)
	return identity, ok
}
