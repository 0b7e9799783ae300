// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interview_coach"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Analysis metrics
	AnalysesTotal    prometheus.Counter
	AnalysesActive   prometheus.Gauge
	AnalysesSuccess  prometheus.Counter
	AnalysesDegraded *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram

	// Audio metrics
	AudioBytesReceived prometheus.Counter
	UploadsReceived    prometheus.Counter

	// STT metrics
	STTLatency *prometheus.HistogramVec
	STTErrors  *prometheus.CounterVec

	// LLM metrics
	LLMLatency *prometheus.HistogramVec
	LLMErrors  *prometheus.CounterVec

	// Kafka publish metrics
	KafkaPublishTotal   *prometheus.CounterVec
	KafkaPublishErrors  *prometheus.CounterVec
	KafkaPublishLatency *prometheus.HistogramVec

	// Read-path metrics
	ResultsServed      *prometheus.CounterVec
	PDFRendered        prometheus.Counter
	PDFRenderFailures  prometheus.Counter
	PromptsGenerated   prometheus.Counter
	PromptGenFailures  prometheus.Counter
}

// DefaultMetrics is the global metrics instance.
var DefaultMetrics = NewMetrics()

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		AnalysesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analysis requests started",
		}),
		AnalysesActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "analyses_active",
			Help:      "Number of currently running analyses",
		}),
		AnalysesSuccess: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_success_total",
			Help:      "Total number of fully successful analyses",
		}),
		AnalysesDegraded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_degraded_total",
			Help:      "Total number of analyses that returned an error payload",
		}, []string{"reason"}),
		AnalysisDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end duration of an analysis in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		}),

		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total audio bytes received via uploads",
		}),
		UploadsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_received_total",
			Help:      "Total audio uploads received",
		}),

		STTLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stt_latency_seconds",
			Help:      "Speech-to-text transcription latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"provider"}),
		STTErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stt_errors_total",
			Help:      "Total number of STT errors",
		}, []string{"provider"}),

		LLMLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_latency_seconds",
			Help:      "LLM chat completion latency in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"model"}),
		LLMErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_errors_total",
			Help:      "Total number of LLM errors",
		}, []string{"model"}),

		KafkaPublishTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_total",
			Help:      "Total number of Kafka messages published",
		}, []string{"topic", "event_type"}),
		KafkaPublishErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_publish_errors_total",
			Help:      "Total number of Kafka publish errors",
		}, []string{"topic", "event_type"}),
		KafkaPublishLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_latency_seconds",
			Help:      "Kafka publish latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"topic"}),

		ResultsServed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_served_total",
			Help:      "Total number of result reads served",
		}, []string{"endpoint"}),
		PDFRendered: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_rendered_total",
			Help:      "Total number of PDF reports rendered",
		}),
		PDFRenderFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_render_failures_total",
			Help:      "Total number of PDF render failures",
		}),
		PromptsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompts_generated_total",
			Help:      "Total number of prompts generated from job ads",
		}),
		PromptGenFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompt_generation_failures_total",
			Help:      "Total number of failed job-ad prompt generations",
		}),
	}
}

// RecordAnalysisStart records a new analysis starting.
func (m *Metrics) RecordAnalysisStart() {
	m.AnalysesTotal.Inc()
	m.AnalysesActive.Inc()
}

// RecordAnalysisEnd records an analysis ending.
func (m *Metrics) RecordAnalysisEnd(degradedReason string, durationSeconds float64) {
	m.AnalysesActive.Dec()
	m.AnalysisDuration.Observe(durationSeconds)
	if degradedReason == "" {
		m.AnalysesSuccess.Inc()
	} else {
		m.AnalysesDegraded.WithLabelValues(degradedReason).Inc()
	}
}

// RecordUpload records an audio upload.
func (m *Metrics) RecordUpload(bytes int) {
	m.UploadsReceived.Inc()
	m.AudioBytesReceived.Add(float64(bytes))
}

// RecordSTT records a transcription attempt.
func (m *Metrics) RecordSTT(provider string, err error, latencySeconds float64) {
	m.STTLatency.WithLabelValues(provider).Observe(latencySeconds)
	if err != nil {
		m.STTErrors.WithLabelValues(provider).Inc()
	}
}

// RecordLLM records a chat completion attempt.
func (m *Metrics) RecordLLM(model string, err error, latencySeconds float64) {
	m.LLMLatency.WithLabelValues(model).Observe(latencySeconds)
	if err != nil {
		m.LLMErrors.WithLabelValues(model).Inc()
	}
}

// RecordKafkaPublish records a Kafka publish attempt.
func (m *Metrics) RecordKafkaPublish(topic, eventType string, err error, latencySeconds float64) {
	m.KafkaPublishTotal.WithLabelValues(topic, eventType).Inc()
	m.KafkaPublishLatency.WithLabelValues(topic).Observe(latencySeconds)
	if err != nil {
		m.KafkaPublishErrors.WithLabelValues(topic, eventType).Inc()
	}
}

// RecordResultRead records a result read on a given endpoint.
func (m *Metrics) RecordResultRead(endpoint string) {
	m.ResultsServed.WithLabelValues(endpoint).Inc()
}

// RecordPDF records a PDF render attempt.
func (m *Metrics) RecordPDF(err error) {
	if err != nil {
		m.PDFRenderFailures.Inc()
		return
	}
	m.PDFRendered.Inc()
}

// RecordPromptGeneration records a job-ad prompt generation attempt.
func (m *Metrics) RecordPromptGeneration(err error) {
	if err != nil {
		m.PromptGenFailures.Inc()
		return
	}
	m.PromptsGenerated.Inc()
}
