package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
		m.ObserveUpstream("backend", "exit", OutcomeSuccess, time.Millisecond)
		m.IncPricingQuote(QuoteFallback)
		m.IncBillUpdate("failed")
		m.IncExitTransition("EXITED")
		m.SetPricingModelUp(true)
		m.SetActiveTransactions(3)
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("parking-desk", prometheus.NewRegistry())

	m.IncPricingQuote(QuoteModel)
	m.IncPricingQuote(QuoteFallback)
	m.IncPricingQuote(QuoteFallback)
	m.SetPricingModelUp(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pricingQuotes.WithLabelValues(QuoteModel)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.pricingQuotes.WithLabelValues(QuoteFallback)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pricingModelUp))
}
