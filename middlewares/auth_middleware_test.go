package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-bizops-dashboard/utils"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func newRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", AdminAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"admin_id": c.MustGet("admin_id")})
	})
	r.GET("/user", UserAuth(), RequirePerm("INVOICE"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("user_id")})
	})
	return r
}

func call(r *gin.Engine, path, token string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestAuth(t *testing.T) {
	adminTok, err := utils.GenerateAdminToken(1, "root", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	userTok, _ := utils.GenerateUserToken(2, "clerk", []string{"invoice"}, time.Hour)
	noPerms, _ := utils.GenerateUserToken(3, "intern", nil, time.Hour)
	expired, _ := utils.GenerateAdminToken(1, "root", -time.Minute)

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"admin ok", "/admin", adminTok, http.StatusOK},
		{"admin missing token", "/admin", "", http.StatusUnauthorized},
		{"admin with user token", "/admin", userTok, http.StatusUnauthorized},
		{"admin expired", "/admin", expired, http.StatusUnauthorized},
		{"user ok", "/user", userTok, http.StatusOK},
		{"user with admin token", "/user", adminTok, http.StatusUnauthorized},
		{"user without permission", "/user", noPerms, http.StatusForbidden},
		{"garbage", "/user", "abc.def.ghi", http.StatusUnauthorized},
	}
	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := call(r, tt.path, tt.token); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
