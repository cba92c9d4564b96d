package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPricingQuote_DemandLevel(t *testing.T) {
	tests := []struct {
		multiplier float64
		expected   DemandLevel
	}{
		{0.8, DemandNormal},
		{1.0, DemandNormal},
		{1.1, DemandModerate},
		{1.2, DemandModerate},
		{1.35, DemandHigh},
	}
	for _, tt := range tests {
		q := &PricingQuote{Multiplier: tt.multiplier}
		assert.Equal(t, tt.expected, q.DemandLevel(), "multiplier %v", tt.multiplier)
	}
}

func TestPricingQuote_IsModelPriced(t *testing.T) {
	var nilQuote *PricingQuote
	assert.False(t, nilQuote.IsModelPriced())
	assert.False(t, (&PricingQuote{Fallback: true}).IsModelPriced())
	assert.True(t, (&PricingQuote{Multiplier: 1.1}).IsModelPriced())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50.00", FormatAmount(50))
	assert.Equal(t, "62.50", FormatAmount(62.5))
	assert.Equal(t, "0.33", FormatAmount(1.0/3.0))
}

func TestParkingSession_ParkedFor(t *testing.T) {
	in := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := &ParkingSession{TimeIn: in, Status: SessionParked}

	assert.Equal(t, 90*time.Minute, s.ParkedFor(in.Add(90*time.Minute)))
	assert.Equal(t, time.Duration(0), s.ParkedFor(in.Add(-time.Minute)))

	out := in.Add(30 * time.Minute)
	s.TimeOut = &out
	assert.Equal(t, 30*time.Minute, s.ParkedFor(in.Add(5*time.Hour)))
}
