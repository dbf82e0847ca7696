package observability

// Metric keys registered by the composition root. Use-case and HTTP metrics
// follow the RED convention; stock_decrement_failed_total counts orders that
// persisted but whose inventory decrement did not apply.
const (
	MUsecaseRequests         MetricKey = "usecase_requests_total"
	MUsecaseDuration         MetricKey = "usecase_duration_seconds"
	MHTTPRequests            MetricKey = "http_requests_total"
	MHTTPRequestDuration     MetricKey = "http_request_duration_seconds"
	MExternalRequests        MetricKey = "external_requests_total"
	MExternalRequestDuration MetricKey = "external_request_duration_seconds"
	MStockDecrementFailures  MetricKey = "stock_decrement_failed_total"
)
