package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/demo-call-gateway/internal/service/dispatch"
)

func getTwiML(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/twiml?"+query, nil)
	rec := httptest.NewRecorder()
	h.handleTwiML(rec, req)
	return rec
}

func TestHandleTwiML(t *testing.T) {
	h := newTestHandler(dispatch.NewMockDispatcher(testLogger()), 2)

	rec := getTwiML(h, "industryName=Banking&useCaseName=Collections&requestId=req-42")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/xml")

	body := rec.Body.String()
	assert.Contains(t, body, "<Response>")
	assert.Contains(t, body, "You selected Banking and Collections.")
	assert.Contains(t, body, "Reference ID req-42.")
	assert.Equal(t, 3, strings.Count(body, "<Say"), "script has three spoken lines")
	assert.Equal(t, 2, strings.Count(body, "<Pause"), "script pauses between lines")
}

func TestHandleTwiML_EscapesXML(t *testing.T) {
	h := newTestHandler(dispatch.NewMockDispatcher(testLogger()), 2)

	rec := getTwiML(h, "industryName=A%26B&useCaseName=%3Cscript%3E&requestId=x%22y")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "A&amp;B")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, `x"y`)
}

func TestHandleTwiML_Defaults(t *testing.T) {
	h := newTestHandler(dispatch.NewMockDispatcher(testLogger()), 2)

	rec := getTwiML(h, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "your industry")
	assert.Contains(t, body, "your workflow")
}
