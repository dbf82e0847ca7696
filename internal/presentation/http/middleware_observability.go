package httppresentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/commercelab/orderflow/internal/observability"
	"github.com/commercelab/orderflow/internal/observability/logctx"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const headerRequestID = "X-Request-ID"

// ObservabilityMiddleware combines:
// - W3C Trace Context extraction and a server span per request
// - request-scoped logger injection
// - X-Request-ID echo (falling back to chi's request id)
// - HTTP RED metrics and an access log with low-cardinality route labels
func ObservabilityMiddleware(base observability.Logger, tel observability.Observability) func(http.Handler) http.Handler {
	if base == nil {
		base = observability.NopLogger()
	}
	prop := otel.GetTextMapPropagator() // W3C by default
	tracer := otel.Tracer("orderflow.http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			rid := r.Header.Get(headerRequestID)
			if rid == "" {
				rid = chimiddleware.GetReqID(ctx)
			}
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(headerRequestID, rid)

			ctx, span := tracer.Start(ctx,
				r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
					attribute.String("http.user_agent", r.UserAgent()),
				),
			)
			defer span.End()

			fields := []observability.Field{observability.F("request_id", rid)}
			if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
				fields = append(fields,
					observability.F("trace_id", sc.TraceID().String()),
					observability.F("span_id", sc.SpanID().String()),
				)
			}
			reqLogger := base.With(fields...)
			ctx = logctx.With(ctx, reqLogger)

			start := time.Now()
			lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			// Resolved only after routing completes.
			route := chi.RouteContext(ctx).RoutePattern()
			if route == "" {
				route = "unknown"
			}
			span.SetAttributes(attribute.String("http.route", route))
			statusLabel := strconv.Itoa(lrw.status)

			if tel != nil {
				tel.Metrics().Counter(observability.MHTTPRequests).Add(1,
					observability.L("method", r.Method),
					observability.L("route", route),
					observability.L("status", statusLabel),
				)
				tel.Metrics().Histogram(observability.MHTTPRequestDuration).Observe(time.Since(start).Seconds(),
					observability.L("method", r.Method),
					observability.L("route", route),
					observability.L("status", statusLabel),
				)
			}

			reqLogger.Info("http_access",
				observability.F("method", r.Method),
				observability.F("route", route),
				observability.F("path", r.URL.Path),
				observability.F("status", lrw.status),
				observability.F("latency_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
