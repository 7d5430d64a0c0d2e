package payment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChargeRequest describes a single course purchase.
type ChargeRequest struct {
	UserID         uint    `json:"user_id"`
	CourseID       uint    `json:"course_id"`
	Amount         float64 `json:"amount"`
	PlatformFee    float64 `json:"platform_fee"`
	Total          float64 `json:"total"`
	Currency       string  `json:"currency"`
	Method         string  `json:"method"`
	CardNumber     string  `json:"card_number,omitempty"`
	CardholderName string  `json:"cardholder_name,omitempty"`
}

// ChargeResult is what the processor reports back.
type ChargeResult struct {
	Succeeded bool
	Gateway   string
	Reference string
	Message   string
}

// Processor charges a customer for a course.
type Processor interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

// SimulatedProcessor accepts every charge. It is the default when no gateway is configured.
type SimulatedProcessor struct{}

func (p SimulatedProcessor) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return ChargeResult{}, err
	}
	return ChargeResult{
		Succeeded: true,
		Gateway:   "simulated",
		Reference: "SIM-" + uuid.NewString(),
		Message:   "payment accepted",
	}, nil
}

// NewProcessor returns a gateway-backed processor when gatewayURL is set,
// otherwise the simulated one.
func NewProcessor(gatewayURL, apiKey string) Processor {
	if gatewayURL == "" {
		return SimulatedProcessor{}
	}
	return NewGatewayProcessor(gatewayURL, apiKey, 15*time.Second)
}

var (
	defaultMu        sync.RWMutex
	defaultProcessor Processor = SimulatedProcessor{}
)

// SetDefault installs the processor used by the payment handlers.
func SetDefault(p Processor) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultProcessor = p
}

func Default() Processor {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultProcessor
}
