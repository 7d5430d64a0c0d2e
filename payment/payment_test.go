package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		want     float64
		wantFree bool
		wantErr  bool
	}{
		{name: "dollar", price: "$49", want: 49},
		{name: "cents", price: "$19.99", want: 19.99},
		{name: "no sign", price: "59", want: 59},
		{name: "thousands", price: "$1,200", want: 1200},
		{name: "free", price: "Free", wantFree: true},
		{name: "free lowercase", price: "free", wantFree: true},
		{name: "empty", price: "", wantFree: true},
		{name: "garbage", price: "forty", wantErr: true},
		{name: "negative", price: "$-5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, free, err := ParsePrice(tt.price)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFree, free)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestTotalAddsPlatformFee(t *testing.T) {
	assert.Equal(t, 51.99, Total(49, 2.99))
	assert.Equal(t, 42.0, Total(39.01, 2.99))
	assert.Equal(t, 2.99, Total(0, 2.99))
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 4.3, Round1(4.333))
	assert.Equal(t, 4.7, Round1(4.666))
	assert.Equal(t, 0.0, Round1(0))
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "**** 4242", MaskCard("4242 4242 4242 4242"))
	assert.Equal(t, "****12", MaskCard("12"))
	assert.Equal(t, "", MaskCard(""))
}

func TestSimulatedProcessorAlwaysSucceeds(t *testing.T) {
	res, err := SimulatedProcessor{}.Charge(context.Background(), ChargeRequest{Total: 51.99})
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, "simulated", res.Gateway)
	assert.NotEmpty(t, res.Reference)
}

func TestNewProcessorDefaultsToSimulated(t *testing.T) {
	_, ok := NewProcessor("", "").(SimulatedProcessor)
	assert.True(t, ok)
	_, ok = NewProcessor("http://gateway.local", "key").(*GatewayProcessor)
	assert.True(t, ok)
}

func TestGatewayProcessorCharge(t *testing.T) {
	var got ChargeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_123","status":"succeeded"}`))
	}))
	defer srv.Close()

	p := NewGatewayProcessor(srv.URL, "secret", time.Second)
	res, err := p.Charge(context.Background(), ChargeRequest{CourseID: 7, Total: 51.99, Method: "card"})
	require.NoError(t, err)
	assert.True(t, res.Succeeded)
	assert.Equal(t, "ch_123", res.Reference)
	assert.Equal(t, uint(7), got.CourseID)
	assert.Equal(t, 51.99, got.Total)
}

func TestGatewayProcessorDecline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"status":"declined","message":"card declined"}`))
	}))
	defer srv.Close()

	res, err := NewGatewayProcessor(srv.URL, "", time.Second).Charge(context.Background(), ChargeRequest{Total: 10})
	require.NoError(t, err)
	assert.False(t, res.Succeeded)
}
