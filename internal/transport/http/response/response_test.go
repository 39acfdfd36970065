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

func TestError_DefaultAndCustomMsg(t *testing.T) {
	assert.Equal(t, "Not Found", Error(CodeNotFound, "").Msg)
	assert.Equal(t, "gone", Error(CodeNotFound, "gone").Msg)
	assert.Equal(t, struct{}{}, Error(CodeNotFound, "").Data)
}

func TestOKAndRaw(t *testing.T) {
	assert.Equal(t, struct{}{}, OK(nil).Data)
	assert.Nil(t, Raw(nil).Data)
	assert.Equal(t, CodeOK, Raw(nil).Code)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, Status(CodeOK))
	assert.Equal(t, http.StatusConflict, Status(CodeConflict))
	assert.Equal(t, http.StatusInternalServerError, Status(999))
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Abort(c, CodeForbidden, "Forbidden resource")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	var r Resp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	assert.Equal(t, CodeForbidden, r.Code)
	assert.Equal(t, "Forbidden resource", r.Msg)
}
