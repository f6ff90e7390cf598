package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"primefire/internal/config"
	"primefire/internal/model"
	"primefire/internal/repository"
	"primefire/internal/service"
	"primefire/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// employeeContextKey is where RequireAuth stores the resolved employee.
const employeeContextKey = "current_employee"

// ObjectIDFromToken extracts the Azure AD object ID from a raw bearer token.
// The signature is not verified; the audience and issuer claims must match
// the configured app registration. The object ID comes from the oid claim,
// falling back to sub.
func ObjectIDFromToken(cfg *config.Config, tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("malformed token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("malformed token claims")
	}

	audience, err := claims.GetAudience()
	if err != nil {
		return "", fmt.Errorf("audience claim is missing")
	}
	audienceOK := false
	for _, aud := range audience {
		if aud == cfg.ExpectedAudience() {
			audienceOK = true
			break
		}
	}
	if !audienceOK {
		return "", fmt.Errorf("token audience mismatch")
	}

	issuer, err := claims.GetIssuer()
	if err != nil || issuer != cfg.ExpectedIssuer() {
		return "", fmt.Errorf("token issuer mismatch")
	}

	if oid, ok := claims["oid"].(string); ok && oid != "" {
		return oid, nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	return "", fmt.Errorf("token carries no object ID")
}

// bearerToken pulls the access token from the Authorization header, falling
// back to the token cookie.
func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", fmt.Errorf("Invalid authorization format. Expected 'Bearer <token>'")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", fmt.Errorf("Authorization is missing")
}

// RequireAuth validates the Azure AD token claims and resolves the calling
// employee by object ID, storing it in the request context.
func RequireAuth(cfg *config.Config, employees repository.EmployeeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
			return
		}

		oid, err := ObjectIDFromToken(cfg, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		employee, err := employees.GetByAzureOID(c.Request.Context(), oid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Employee not found, contact an administrator"))
			return
		}

		c.Set(employeeContextKey, employee)
		c.Next()
	}
}

// CurrentEmployee returns the employee RequireAuth stored on the context.
func CurrentEmployee(c *gin.Context) (*model.Employee, bool) {
	value, ok := c.Get(employeeContextKey)
	if !ok {
		return nil, false
	}
	employee, ok := value.(*model.Employee)
	return employee, ok
}

// RequirePermission gates a route on one permission flag of one module,
// aggregated across the current employee's roles. Runs after RequireAuth.
func RequirePermission(permissions service.PermissionService, moduleKey, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employee, ok := CurrentEmployee(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing"))
			return
		}

		allowed, err := permissions.HasPermission(c.Request.Context(), employee, moduleKey, action)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to verify permissions"))
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing "+action+" permission on "+moduleKey))
			return
		}

		c.Next()
	}
}
