package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/teams/:slug", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues("/api/teams/:slug", "GET", "418"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/teams/backend", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("/api/teams/:slug", "GET", "418"))
	assert.Equal(t, before+1, after)
}

func TestLifecycleCounters(t *testing.T) {
	created := testutil.ToFloat64(invitations.WithLabelValues("created"))
	accepted := testutil.ToFloat64(invitations.WithLabelValues("accepted"))
	searches := testutil.ToFloat64(searchQueries.WithLabelValues("team"))

	InvitationCreated()
	InvitationAccepted()
	SearchQuery("team")

	assert.Equal(t, created+1, testutil.ToFloat64(invitations.WithLabelValues("created")))
	assert.Equal(t, accepted+1, testutil.ToFloat64(invitations.WithLabelValues("accepted")))
	assert.Equal(t, searches+1, testutil.ToFloat64(searchQueries.WithLabelValues("team")))
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/metrics", Handler())
	SearchQuery("employee")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "team_search_queries_total")
}
