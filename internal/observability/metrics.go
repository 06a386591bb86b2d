package observability

const (
	MWorkflowRequests    MetricKey = "workflow_requests_total"
	MWorkflowDuration    MetricKey = "workflow_duration_seconds"
	MHTTPRequests        MetricKey = "http_requests_total"
	MHTTPRequestDuration MetricKey = "http_request_duration_seconds"
	MDomainEvents        MetricKey = "domain_events_total"
	MExportedRecords     MetricKey = "exported_records_total"
)
