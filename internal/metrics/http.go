package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// unmatchedRoute labels requests that hit no registered route, keeping path cardinality bounded.
const unmatchedRoute = "unmatched"

// probeRoutes are polled by orchestrators and would drown out API traffic.
var probeRoutes = map[string]struct{}{
	"/health": {},
	"/ready":  {},
}

// responseSizeBuckets spans JSON payloads up to whole-chapter audio files.
var responseSizeBuckets = []float64{256, 1 << 10, 8 << 10, 64 << 10, 512 << 10, 2 << 20, 8 << 20, 32 << 20, 128 << 20}

type httpInstruments struct {
	requests metric.Int64Counter
	latency  metric.Float64Histogram
	size     metric.Int64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPInstruments(meter metric.Meter, namespace string) (*httpInstruments, error) {
	requests, err := meter.Int64Counter(
		namespace+"_http_requests_total",
		metric.WithDescription("HTTP requests by method, route and status code"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		namespace+"_http_request_duration_seconds",
		metric.WithDescription("Time until the handler returned, including streamed audio bodies"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	size, err := meter.Int64Histogram(
		namespace+"_http_response_size_bytes",
		metric.WithDescription("Bytes written to the client"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(responseSizeBuckets...),
	)
	if err != nil {
		return nil, err
	}
	inFlight, err := meter.Int64UpDownCounter(
		namespace+"_http_requests_in_flight",
		metric.WithDescription("Requests currently being served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}
	return &httpInstruments{requests: requests, latency: latency, size: size, inFlight: inFlight}, nil
}

// HTTPMetricsMiddleware records request count, latency, response size and in-flight requests.
// Requests are labelled by route pattern, never by raw path. Health probes are not recorded.
// If the instruments cannot be created the middleware degrades to a pass-through.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	instruments, err := newHTTPInstruments(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		route := sanitizePath(c.FullPath())
		if _, probe := probeRoutes[route]; probe {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		routeAttrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
		)
		instruments.inFlight.Add(ctx, 1, routeAttrs)
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		instruments.inFlight.Add(ctx, -1, routeAttrs)

		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		instruments.requests.Add(ctx, 1, attrs)
		instruments.latency.Record(ctx, elapsed.Seconds(), attrs)
		if written := c.Writer.Size(); written > 0 {
			instruments.size.Record(ctx, int64(written), attrs)
		}
	}
}

// sanitizePath returns the matched route pattern, or unmatchedRoute when gin matched nothing.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return unmatchedRoute
	}
	return fullPath
}
