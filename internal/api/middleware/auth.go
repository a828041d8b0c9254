package middleware

import (
	"strings"

	"vida-fed/internal/api/response"
	"vida-fed/pkg/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextKeySubject = "currentSubject"
	ContextKeyRole    = "currentRole"
)

// AuthRequired JWT 认证中间件，secret 每次请求读取，配置热更新后立即生效
func AuthRequired(secret func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Unauthorized(c, "缺少认证令牌")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(secret(), token)
		if err != nil {
			response.Unauthorized(c, "无效或过期的认证令牌")
			c.Abort()
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyRole, claims.Role)
		c.Next()
	}
}

// GetCurrentSubject 从 Gin Context 中获取当前令牌主体
func GetCurrentSubject(c *gin.Context) (string, bool) {
	val, exists := c.Get(ContextKeySubject)
	if !exists {
		return "", false
	}
	subject, ok := val.(string)
	return subject, ok
}

// AdminRequired 管理员权限中间件（必须在 AuthRequired 之后使用），角色直接取自令牌
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetCurrentSubject(c); !ok {
			response.Unauthorized(c, "缺少认证信息")
			c.Abort()
			return
		}

		if c.GetString(ContextKeyRole) != utils.RoleAdmin {
			response.Forbidden(c, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractToken 从 Authorization 头中提取 Bearer Token
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
