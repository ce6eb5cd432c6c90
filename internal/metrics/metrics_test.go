package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthOperations.WithLabelValues("login", ResultFailure))

	ObserveAuth("login", false)
	ObserveAuth("login", false)

	after := testutil.ToFloat64(AuthOperations.WithLabelValues("login", ResultFailure))
	assert.Equal(t, before+2, after)
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveMail("verify", true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "blogsvc_mail_deliveries_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
