package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordReturn(t *testing.T) {
	onTime := testutil.ToFloat64(returns.WithLabelValues("false"))
	late := testutil.ToFloat64(returns.WithLabelValues("true"))
	fees := testutil.ToFloat64(lateFees)

	RecordReturn(0)
	RecordReturn(12)

	assert.Equal(t, onTime+1, testutil.ToFloat64(returns.WithLabelValues("false")))
	assert.Equal(t, late+1, testutil.ToFloat64(returns.WithLabelValues("true")))
	assert.Equal(t, fees+12, testutil.ToFloat64(lateFees))
}

func TestRecordBorrow(t *testing.T) {
	before := testutil.ToFloat64(borrows)
	RecordBorrow()
	assert.Equal(t, before+1, testutil.ToFloat64(borrows))
}

func TestGinMiddleware_LabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/api/books/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/books/:id", "204"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/books/42", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/books/:id", "204")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "library_http_requests_total"))
}
