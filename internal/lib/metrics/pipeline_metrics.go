package metrics

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineMetrics — метрики этапов конвейера (фильтрация, сортировка, скоринг).
// Все операции ядра чисто вычислительные, поэтому достаточно атомарных счётчиков.
type PipelineMetrics struct {
	log *slog.Logger

	// Счётчики вызовов
	filterCallsTotal     int64
	sortCallsTotal       int64
	motivationCallsTotal int64
	investmentCallsTotal int64

	// Счётчики ошибок (ошибки валидации входа)
	filterErrorsTotal     int64
	sortErrorsTotal       int64
	motivationErrorsTotal int64
	investmentErrorsTotal int64

	// Суммарная задержка (для расчёта среднего)
	filterLatencyTotalMs     int64
	sortLatencyTotalMs       int64
	motivationLatencyTotalMs int64
	investmentLatencyTotalMs int64

	// Последние задержки
	filterLastLatencyMs     int64
	sortLastLatencyMs       int64
	motivationLastLatencyMs int64
	investmentLastLatencyMs int64

	// Счётчики записей (на входе и выходе фильтрации)
	recordsInTotal  int64
	recordsOutTotal int64
}

var (
	globalMetrics *PipelineMetrics
	metricsOnce   sync.Once
)

// GetPipelineMetrics возвращает глобальный экземпляр метрик.
func GetPipelineMetrics(log *slog.Logger) *PipelineMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &PipelineMetrics{log: log}
	})
	return globalMetrics
}

// NewPipelineMetrics создаёт изолированный экземпляр (для тестов).
func NewPipelineMetrics(log *slog.Logger) *PipelineMetrics {
	return &PipelineMetrics{log: log}
}

// Stage — этап конвейера.
type Stage string

const (
	StageFilter     Stage = "filter"
	StageSort       Stage = "sort"
	StageMotivation Stage = "motivation"
	StageInvestment Stage = "investment"
)

// RecordCall записывает вызов этапа конвейера.
func (m *PipelineMetrics) RecordCall(stage Stage, latency time.Duration, err error) {
	latencyMs := latency.Milliseconds()

	switch stage {
	case StageFilter:
		atomic.AddInt64(&m.filterCallsTotal, 1)
		atomic.AddInt64(&m.filterLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.filterLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.filterErrorsTotal, 1)
		}
	case StageSort:
		atomic.AddInt64(&m.sortCallsTotal, 1)
		atomic.AddInt64(&m.sortLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.sortLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.sortErrorsTotal, 1)
		}
	case StageMotivation:
		atomic.AddInt64(&m.motivationCallsTotal, 1)
		atomic.AddInt64(&m.motivationLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.motivationLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.motivationErrorsTotal, 1)
		}
	case StageInvestment:
		atomic.AddInt64(&m.investmentCallsTotal, 1)
		atomic.AddInt64(&m.investmentLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.investmentLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.investmentErrorsTotal, 1)
		}
	}

	if m.log != nil {
		logAttrs := []any{
			slog.String("stage", string(stage)),
			slog.Int64("latency_ms", latencyMs),
		}
		if err != nil {
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			m.log.Warn("pipeline stage failed", logAttrs...)
		} else {
			m.log.Debug("pipeline stage completed", logAttrs...)
		}
	}
}

// RecordBatch записывает размеры батча до и после фильтрации.
func (m *PipelineMetrics) RecordBatch(recordsIn, recordsOut int) {
	atomic.AddInt64(&m.recordsInTotal, int64(recordsIn))
	atomic.AddInt64(&m.recordsOutTotal, int64(recordsOut))
}

// StageTimer помогает измерять время этапа.
type StageTimer struct {
	metrics   *PipelineMetrics
	stage     Stage
	startTime time.Time
}

// StartTimer начинает измерение времени этапа.
func (m *PipelineMetrics) StartTimer(stage Stage) *StageTimer {
	return &StageTimer{
		metrics:   m,
		stage:     stage,
		startTime: time.Now(),
	}
}

// Stop останавливает таймер и записывает метрики.
func (t *StageTimer) Stop(err error) {
	latency := time.Since(t.startTime)
	t.metrics.RecordCall(t.stage, latency, err)
}

// Stats — текущая статистика по конвейеру.
type Stats struct {
	Filter     StageStats `json:"filter"`
	Sort       StageStats `json:"sort"`
	Motivation StageStats `json:"motivation"`
	Investment StageStats `json:"investment"`
	RecordsIn  int64      `json:"records_in_total"`
	RecordsOut int64      `json:"records_out_total"`
}

// StageStats — статистика по одному этапу.
type StageStats struct {
	CallsTotal    int64   `json:"calls_total"`
	ErrorsTotal   int64   `json:"errors_total"`
	ErrorRate     float64 `json:"error_rate"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	LastLatencyMs int64   `json:"last_latency_ms"`
}

// GetStats возвращает текущую статистику.
func (m *PipelineMetrics) GetStats() Stats {
	return Stats{
		Filter:     m.getStageStats(StageFilter),
		Sort:       m.getStageStats(StageSort),
		Motivation: m.getStageStats(StageMotivation),
		Investment: m.getStageStats(StageInvestment),
		RecordsIn:  atomic.LoadInt64(&m.recordsInTotal),
		RecordsOut: atomic.LoadInt64(&m.recordsOutTotal),
	}
}

func (m *PipelineMetrics) getStageStats(stage Stage) StageStats {
	var calls, errCount, latencyTotal, lastLatency int64

	switch stage {
	case StageFilter:
		calls = atomic.LoadInt64(&m.filterCallsTotal)
		errCount = atomic.LoadInt64(&m.filterErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.filterLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.filterLastLatencyMs)
	case StageSort:
		calls = atomic.LoadInt64(&m.sortCallsTotal)
		errCount = atomic.LoadInt64(&m.sortErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.sortLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.sortLastLatencyMs)
	case StageMotivation:
		calls = atomic.LoadInt64(&m.motivationCallsTotal)
		errCount = atomic.LoadInt64(&m.motivationErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.motivationLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.motivationLastLatencyMs)
	case StageInvestment:
		calls = atomic.LoadInt64(&m.investmentCallsTotal)
		errCount = atomic.LoadInt64(&m.investmentErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.investmentLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.investmentLastLatencyMs)
	}

	var errorRate, avgLatency float64
	if calls > 0 {
		errorRate = float64(errCount) / float64(calls)
		avgLatency = float64(latencyTotal) / float64(calls)
	}

	return StageStats{
		CallsTotal:    calls,
		ErrorsTotal:   errCount,
		ErrorRate:     errorRate,
		AvgLatencyMs:  avgLatency,
		LastLatencyMs: lastLatency,
	}
}

// Reset сбрасывает все метрики.
func (m *PipelineMetrics) Reset() {
	atomic.StoreInt64(&m.filterCallsTotal, 0)
	atomic.StoreInt64(&m.sortCallsTotal, 0)
	atomic.StoreInt64(&m.motivationCallsTotal, 0)
	atomic.StoreInt64(&m.investmentCallsTotal, 0)
	atomic.StoreInt64(&m.filterErrorsTotal, 0)
	atomic.StoreInt64(&m.sortErrorsTotal, 0)
	atomic.StoreInt64(&m.motivationErrorsTotal, 0)
	atomic.StoreInt64(&m.investmentErrorsTotal, 0)
	atomic.StoreInt64(&m.filterLatencyTotalMs, 0)
	atomic.StoreInt64(&m.sortLatencyTotalMs, 0)
	atomic.StoreInt64(&m.motivationLatencyTotalMs, 0)
	atomic.StoreInt64(&m.investmentLatencyTotalMs, 0)
	atomic.StoreInt64(&m.filterLastLatencyMs, 0)
	atomic.StoreInt64(&m.sortLastLatencyMs, 0)
	atomic.StoreInt64(&m.motivationLastLatencyMs, 0)
	atomic.StoreInt64(&m.investmentLastLatencyMs, 0)
	atomic.StoreInt64(&m.recordsInTotal, 0)
	atomic.StoreInt64(&m.recordsOutTotal, 0)
}
