package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func TestSuccessWritesEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("request_id", "req-1")

	Success(c, http.StatusCreated, map[string]int{"likesCount": 2}, "Design liked successfully", nil)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Design liked successfully", body["message"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.Equal(t, float64(2), body["data"].(map[string]any)["likesCount"])
	assert.NotContains(t, body, "error")
}

func TestErrorWritesEnvelopeAndAborts(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, http.StatusNotFound, CodeNotFound, "Design not found", nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
	var body struct {
		Success bool      `json:"success"`
		Error   *APIError `json:"error"`
		Data    any       `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, CodeNotFound, body.Error.Code)
	assert.Equal(t, "Design not found", body.Error.Message)
	assert.Nil(t, body.Data)
}

func TestErrorDefaultsToBadRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, 0, CodeBadRequest, "bad", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
