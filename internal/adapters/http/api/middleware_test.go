package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/standings/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestErrorTaxonomy(t *testing.T) {
	Convey("Given the status codes the handlers answer with", t, func() {
		Convey("Then each publish and standings failure should have its own kind", func() {
			So(getErrorType(http.StatusBadRequest), ShouldEqual, "bad_request")
			So(getErrorType(http.StatusUnauthorized), ShouldEqual, "access_denied")
			So(getErrorType(http.StatusForbidden), ShouldEqual, "publish_disabled")
			So(getErrorType(http.StatusNotFound), ShouldEqual, "not_found")
			So(getErrorType(http.StatusRequestEntityTooLarge), ShouldEqual, "too_large")
			So(getErrorType(http.StatusUnsupportedMediaType), ShouldEqual, "unsupported_format")
			So(getErrorType(http.StatusUnprocessableEntity), ShouldEqual, "missing_column")
			So(getErrorType(http.StatusTooManyRequests), ShouldEqual, "rate_limited")
			So(getErrorType(http.StatusInternalServerError), ShouldEqual, "server_error")
			So(getErrorType(http.StatusMethodNotAllowed), ShouldEqual, "client_error")
		})

		Convey("Then severities should rank server and data failures highest", func() {
			So(getErrorSeverity(http.StatusInternalServerError), ShouldEqual, "high")
			So(getErrorSeverity(http.StatusUnprocessableEntity), ShouldEqual, "high")
			So(getErrorSeverity(http.StatusUnauthorized), ShouldEqual, "warning")
			So(getErrorSeverity(http.StatusTooManyRequests), ShouldEqual, "warning")
			So(getErrorSeverity(http.StatusUnsupportedMediaType), ShouldEqual, "low")
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a handler that rejects an upload as too large", t, func() {
		h := MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", ErrTooLarge)
		}, "middleware_test")

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodPost, "/admin/publish", nil))

		Convey("Then the status should pass through and the kind should be recorded", func() {
			So(rec.Code, ShouldEqual, http.StatusRequestEntityTooLarge)

			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			found := false
			for _, mf := range families {
				if !strings.HasSuffix(mf.GetName(), "errors_by_endpoint_total") {
					continue
				}
				for _, m := range mf.GetMetric() {
					labels := map[string]string{}
					for _, lp := range m.GetLabel() {
						labels[lp.GetName()] = lp.GetValue()
					}
					if labels["endpoint"] == "middleware_test" && labels["error_type"] == "too_large" {
						found = m.GetCounter().GetValue() >= 1
					}
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
