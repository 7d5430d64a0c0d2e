package payment

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// GatewayProcessor forwards charges to an external HTTP payment gateway.
// The gateway is expected to answer POST {base}/charges with {"id": "...", "status": "succeeded"}.
type GatewayProcessor struct {
	client *resty.Client
}

type gatewayChargeResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewGatewayProcessor(baseURL, apiKey string, timeout time.Duration) *GatewayProcessor {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &GatewayProcessor{client: client}
}

func (g *GatewayProcessor) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	var out gatewayChargeResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/charges")
	if err != nil {
		log.Printf("[PAYMENT] gateway request failed: %v", err)
		return ChargeResult{}, fmt.Errorf("payment gateway: %w", err)
	}
	if resp.IsError() {
		log.Printf("[PAYMENT] gateway rejected charge: %s", resp.String())
		return ChargeResult{Gateway: "gateway", Message: resp.String()}, nil
	}

	return ChargeResult{
		Succeeded: strings.EqualFold(out.Status, "succeeded"),
		Gateway:   "gateway",
		Reference: out.ID,
		Message:   out.Message,
	}, nil
}
