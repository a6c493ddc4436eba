// Package metrics 提供 Prometheus 指标注册与暴露
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wyfcoding/fxbooking/pkg/logger"
)

// Metrics 预订服务指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTP 请求耗时
	HTTPRequestDuration *prometheus.HistogramVec
	// 成功预订的交易计数（按产品类型）
	TradesBookedTotal *prometheus.CounterVec
	// 校验拒绝计数
	ValidationFailuresTotal prometheus.Counter
	// 状态流转计数（按目标状态）
	StatusTransitionsTotal *prometheus.CounterVec
	// 预订处理耗时
	BookingDuration prometheus.Histogram
}

// New 创建并注册指标集合
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_http_requests_total", serviceName),
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_http_request_duration_seconds", serviceName),
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		TradesBookedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_trades_booked_total", serviceName),
			Help: "Total number of trades booked",
		}, []string{"product_type"}),
		ValidationFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_validation_failures_total", serviceName),
			Help: "Total number of booking requests rejected by validation",
		}),
		StatusTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_status_transitions_total", serviceName),
			Help: "Total number of accepted trade status transitions",
		}, []string{"to_status"}),
		BookingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    fmt.Sprintf("%s_booking_duration_seconds", serviceName),
			Help:    "Trade booking duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}
	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.TradesBookedTotal,
		m.ValidationFailuresTotal,
		m.StatusTransitionsTotal,
		m.BookingDuration,
	)
	return m
}

// RecordTradeBooked 记录一笔成功预订
func (m *Metrics) RecordTradeBooked(productType string) {
	if m == nil {
		return
	}
	m.TradesBookedTotal.WithLabelValues(productType).Inc()
}

// RecordValidationFailure 记录一次校验拒绝
func (m *Metrics) RecordValidationFailure() {
	if m == nil {
		return
	}
	m.ValidationFailuresTotal.Inc()
}

// RecordStatusTransition 记录一次状态流转
func (m *Metrics) RecordStatusTransition(toStatus string) {
	if m == nil {
		return
	}
	m.StatusTransitionsTotal.WithLabelValues(toStatus).Inc()
}

// ObserveBookingDuration 记录预订耗时
func (m *Metrics) ObserveBookingDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.BookingDuration.Observe(d.Seconds())
}

// StartHTTPServer 启动指标 HTTP 服务
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Metrics server started", "addr", addr, "path", path)
	return http.ListenAndServe(addr, mux)
}
