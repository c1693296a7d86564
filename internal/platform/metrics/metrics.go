// Package metrics はPrometheusのコレクターと /metrics ハンドラーを提供します。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contract_analyzer"

// Metrics はサービスが公開するすべてのコレクターを保持します。
// グローバルレジストリを使わないため、テストごとに独立したインスタンスを作れます。
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPDuration  *prometheus.HistogramVec
	LLMRequests   *prometheus.CounterVec
	LLMDuration   *prometheus.HistogramVec
	Extractions   *prometheus.CounterVec
	UpstreamCalls *prometheus.CounterVec
}

// New はコレクターを生成し、新しいレジストリに登録します。
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "LLM completions by provider, model and outcome.",
		}, []string{"provider", "model", "outcome"}),
		LLMDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM completion latency.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"provider"}),
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Text extractions by the method that produced the text.",
		}, []string{"method"}),
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_http_requests_total",
			Help:      "Outbound HTTP requests by status code and method.",
		}, []string{"code", "method"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.LLMRequests,
		m.LLMDuration,
		m.Extractions,
		m.UpstreamCalls,
	)
	return m
}

// Handler は /metrics 用のginハンドラーを返します。
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
	return gin.WrapH(h)
}

// Middleware はリクエスト数とレイテンシを記録します。
// ルートが未マッチの場合は "unmatched" として集計し、ラベルの爆発を防ぎます。
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// InstrumentRoundTripper は外部HTTP呼び出しを UpstreamCalls で計測します。
func (m *Metrics) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperCounter(m.UpstreamCalls, next)
}

// ObserveLLM はLLM呼び出しの結果と所要時間を記録します。
func (m *Metrics) ObserveLLM(provider, model string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.LLMRequests.WithLabelValues(provider, model, outcome).Inc()
	m.LLMDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// ObserveExtraction はテキストを生成した抽出方式を記録します。
func (m *Metrics) ObserveExtraction(method string) {
	m.Extractions.WithLabelValues(method).Inc()
}
