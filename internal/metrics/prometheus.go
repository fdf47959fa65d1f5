package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "route"},
	)

	// Agent metrics
	AgentCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_agent_calls_total",
			Help: "Total number of agent calls",
		},
		[]string{"agent", "model", "status"}, // status: success|error|rate_limited
	)

	AgentLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_agent_latency_seconds",
			Help:    "Agent execution latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"agent", "model"},
	)

	AgentTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_agent_tokens_total",
			Help: "Total tokens used by agents",
		},
		[]string{"agent", "model", "type"}, // type: input|output
	)

	// Tool metrics
	ToolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "status"}, // status: success|error|unknown
	)

	ToolLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "advisor_tool_latency_seconds",
			Help:    "Tool execution latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"tool"},
	)

	// Cache metrics
	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// Session metrics
	SessionsStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_sessions_started_total",
			Help: "Total number of planning sessions started",
		},
	)

	ChatMessages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisor_chat_messages_total",
			Help: "Total number of follow-up chat messages handled",
		},
	)

	// Export metrics
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_exports_total",
			Help: "Total number of plan exports",
		},
		[]string{"format", "status"}, // format: json|pdf|docx
	)
)

// Init registers all metrics with Prometheus
func Init() {
	// HTTP metrics
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)

	// Agent metrics
	prometheus.MustRegister(AgentCalls)
	prometheus.MustRegister(AgentLatency)
	prometheus.MustRegister(AgentTokens)

	// Tool metrics
	prometheus.MustRegister(ToolExecutions)
	prometheus.MustRegister(ToolLatency)

	// Cache metrics
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)

	// Session metrics
	prometheus.MustRegister(SessionsStarted)
	prometheus.MustRegister(ChatMessages)

	// Export metrics
	prometheus.MustRegister(Exports)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a completed HTTP request
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordAgentCall records an agent invocation
func RecordAgentCall(agent, model string, latency time.Duration, inputTokens, outputTokens int64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	AgentCalls.WithLabelValues(agent, model, status).Inc()
	AgentLatency.WithLabelValues(agent, model).Observe(latency.Seconds())

	if inputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		AgentTokens.WithLabelValues(agent, model, "output").Add(float64(outputTokens))
	}
}

// RecordToolCall records a tool execution outcome
func RecordToolCall(tool, status string) {
	ToolExecutions.WithLabelValues(tool, status).Inc()
}

// RecordToolLatency records how long a tool took to execute
func RecordToolLatency(tool string, latency time.Duration) {
	ToolLatency.WithLabelValues(tool).Observe(latency.Seconds())
}

// RecordCacheHit records a cache hit
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordExport records a plan export attempt
func RecordExport(format string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	Exports.WithLabelValues(format, status).Inc()
}
