/*
 * Copyright 2024 caiflower Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package http

import (
	"strconv"

	"github.com/caiflower/luca-http/global/env"
	"github.com/prometheus/client_golang/prometheus"
)

type Metric struct {
	requestTotal     *prometheus.CounterVec
	requestTimeTotal *prometheus.CounterVec
	retryTotal       *prometheus.CounterVec
	costHistogram    prometheus.Histogram
}

// NewMetric registerer为nil时使用prometheus.DefaultRegisterer
func NewMetric(registerer prometheus.Registerer) *Metric {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	constLabels := prometheus.Labels{"ip": env.GetLocalHostIP()}

	buckets := []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}
	metric := &Metric{
		requestTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Name: "luca_http_request_total", Help: "luca_http_request_total counter", ConstLabels: constLabels}, []string{"code", "method", "path"}),
		requestTimeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "luca_http_request_time_total", Help: "luca_http_request_time_total counter", ConstLabels: constLabels}, []string{"code", "method", "path"}),
		retryTotal:       prometheus.NewCounterVec(prometheus.CounterOpts{Name: "luca_http_retry_total", Help: "luca_http_retry_total counter", ConstLabels: constLabels}, []string{"method", "path"}),
		costHistogram:    prometheus.NewHistogram(prometheus.HistogramOpts{Name: "luca_http_request_histogram", Help: "luca_http_request_histogram", Buckets: buckets, ConstLabels: constLabels}),
	}

	registerer.MustRegister(metric.requestTotal, metric.requestTimeTotal, metric.retryTotal, metric.costHistogram)

	return metric
}

// saveMetric cost单位ms
func (m *Metric) saveMetric(code int, method Method, path string, cost int64) {
	if m == nil {
		return
	}
	codeLabel := strconv.Itoa(code)
	m.requestTotal.WithLabelValues(codeLabel, string(method), path).Inc()
	m.requestTimeTotal.WithLabelValues(codeLabel, string(method), path).Add(float64(cost))
	m.costHistogram.Observe(float64(cost))
}

func (m *Metric) saveRetry(method Method, path string) {
	if m == nil {
		return
	}
	m.retryTotal.WithLabelValues(string(method), path).Inc()
}
