package utils

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorKeepsCauseOutOfResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logged bytes.Buffer
	log.SetOutput(&logged)
	defer log.SetOutput(os.Stderr)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/user/login", nil)

	LogError(c, "Failed to record login", nil)
	if logged.Len() != 0 {
		t.Errorf("nil error logged %q", logged.String())
	}

	LogError(c, "Failed to record login", errors.New("database is locked"))
	if !strings.Contains(logged.String(), "Failed to record login: database is locked") {
		t.Errorf("log = %q", logged.String())
	}
	if w.Body.Len() != 0 {
		t.Errorf("LogError wrote a response: %q", w.Body.String())
	}

	Error(c, http.StatusInternalServerError, "Failed to sign token", errors.New("key missing"))
	if w.Code != http.StatusInternalServerError || strings.Contains(w.Body.String(), "key missing") {
		t.Errorf("response %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(logged.String(), "key missing") {
		t.Errorf("cause not logged: %q", logged.String())
	}
}
