package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"notehub-be/pkg/llm"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestRecordRecommendation(t *testing.T) {
	served := RecommendationsTotal.WithLabelValues(OutcomeServed)
	before := getCounterValue(served)

	RecordRecommendation(OutcomeServed, 12, 3)

	assert.Equal(t, before+1, getCounterValue(served))
}

func TestCompletionStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{llm.ErrRateLimited, "rate_limited"},
		{fmt.Errorf("wrapped: %w", llm.ErrQuotaExceeded), "quota_exceeded"},
		{llm.ErrEmptyResponse, "empty"},
		{errors.New("dial tcp"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompletionStatus(tt.err))
	}

	ObserveCompletion("gateway", nil, 250*time.Millisecond)
}
