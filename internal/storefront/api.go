package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pageturn/internal/config"
	"pageturn/internal/dto"
	"pageturn/internal/model"
)

// APIClient talks to the marketplace REST API on behalf of a signed-in buyer.
type APIClient interface {
	GetBook(ctx context.Context, bookID string) (*model.Book, error)
	CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error)
}

type apiClientImpl struct {
	httpClient *http.Client
	baseAPIURL string
	authToken  string
}

func NewAPIClient(cfg *config.Storefront, authToken string) APIClient {
	return &apiClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseAPIURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		authToken:  authToken,
	}
}

// APIError carries the server's error text for a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *apiClientImpl) GetBook(ctx context.Context, bookID string) (*model.Book, error) {
	var res dto.BookResponse
	if err := c.do(ctx, http.MethodGet, "/books/"+bookID, nil, &res); err != nil {
		return nil, err
	}
	if res.Book == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "Book not found"}
	}

	return res.Book, nil
}

func (c *apiClientImpl) CreateOrder(ctx context.Context, req *dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	var res dto.CreateOrderResponse
	if err := c.do(ctx, http.MethodPost, "/payments/create-order", req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *apiClientImpl) VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.VerifyPaymentResponse, error) {
	var res dto.VerifyPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/verify", req, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (c *apiClientImpl) do(ctx context.Context, method, path string, body, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseAPIURL+path, &payload)
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var res dto.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&res)
		if res.Error == "" {
			res.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: res.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
