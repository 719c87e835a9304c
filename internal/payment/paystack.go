package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"glamour-be/internal/logger"

	"go.uber.org/zap"
)

const paystackBaseURL = "https://api.paystack.co"

type paystackGateway struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewPaystackGateway builds a gateway against the live Paystack API.
func NewPaystackGateway(secretKey string) Gateway {
	if secretKey == "" {
		logger.L().Warn("Paystack secret key is empty")
	}

	return &paystackGateway{
		secretKey: secretKey,
		baseURL:   paystackBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type paystackInitData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackInitResponse struct {
	Status  bool             `json:"status"`
	Message string           `json:"message"`
	Data    paystackInitData `json:"data"`
}

func (p *paystackGateway) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("reference", req.Reference),
		zap.String("email", req.Email),
		zap.Int64("amount", req.Amount),
	)

	body := map[string]interface{}{
		"email": req.Email,
		// Paystack amounts are kobo.
		"amount":       req.Amount * 100,
		"reference":    req.Reference,
		"callback_url": req.CallbackURL,
		"currency":     "NGN",
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal payment request", zap.Error(err))
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST",
		p.baseURL+"/transaction/initialize", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Add("Authorization", "Bearer "+p.secretKey)
	httpReq.Header.Add("Content-Type", "application/json")

	log.Info("Sending initialize request to Paystack")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Paystack request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("Paystack returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("paystack error: %s", string(bodyBytes))
	}

	var res paystackInitResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding Paystack response", zap.Error(err))
		return nil, err
	}

	if !res.Status || res.Data.AuthorizationURL == "" {
		log.Error("Paystack response missing authorization URL",
			zap.String("message", res.Message),
		)
		return nil, ErrMissingAuthorizationURL
	}

	log.Info("Paystack transaction initialized",
		zap.String("access_code", res.Data.AccessCode),
	)

	return &InitializeResponse{
		AuthorizationURL: res.Data.AuthorizationURL,
		AccessCode:       res.Data.AccessCode,
		Reference:        res.Data.Reference,
	}, nil
}

type paystackVerifyData struct {
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

type paystackVerifyResponse struct {
	Status  bool               `json:"status"`
	Message string             `json:"message"`
	Data    paystackVerifyData `json:"data"`
}

func (p *paystackGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("reference", reference))

	if reference == "" {
		return nil, ErrMissingReference
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET",
		fmt.Sprintf("%s/transaction/verify/%s", p.baseURL, reference), nil)
	if err != nil {
		log.Error("Failed building request", zap.Error(err))
		return nil, err
	}
	httpReq.Header.Add("Authorization", "Bearer "+p.secretKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		log.Error("Request to Paystack failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	var res paystackVerifyResponse
	if unmarshalErr := json.Unmarshal(bodyBytes, &res); unmarshalErr != nil {
		log.Error("Failed decoding verify response", zap.Error(unmarshalErr))
		return nil, unmarshalErr
	}

	if resp.StatusCode != http.StatusOK || !res.Status {
		log.Error("Paystack verify failed",
			zap.Int("http_status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("paystack verify failed [%d]: %s", resp.StatusCode, string(bodyBytes))
	}

	log.Info("Paystack transaction verified",
		zap.String("tx_status", res.Data.Status),
	)

	return &VerifyResult{
		Status: res.Data.Status,
		// Paystack reports kobo.
		Amount:    res.Data.Amount / 100,
		Reference: res.Data.Reference,
	}, nil
}
