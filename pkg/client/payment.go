package client

import (
	"context"
	"time"

	"voltworks/pkg/model"
)

type PaymentClient struct {
	httpClient *HttpClient
}

func NewPaymentClient(baseURL string, timeout time.Duration) *PaymentClient {
	return &PaymentClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

// Create submits a payment for an appointment's invoice. Never retried
// automatically: a duplicate submission could charge the customer twice.
func (c *PaymentClient) Create(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/payments", req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var result model.PaymentResult
	if err := decodeData(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
