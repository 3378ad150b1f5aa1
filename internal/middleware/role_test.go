package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"mms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(role string, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/equipment/:id",
		func(c *gin.Context) {
			if authenticated {
				c.Set("role", role)
			}
		},
		RequireRole(string(domain.RoleAdmin)),
		func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		},
	)
	return r
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	r := roleRouter(string(domain.RoleAdmin), true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/equipment/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRole_RejectsUnlistedRole(t *testing.T) {
	r := roleRouter(string(domain.RoleTechnician), true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/equipment/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_MissingRoleIsUnauthorized(t *testing.T) {
	r := roleRouter("", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/equipment/7", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
