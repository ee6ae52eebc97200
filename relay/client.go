package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	DEFAULT_TIMEOUT = 10 * time.Second
)

// RelayError is returned when the relay rejects a request. Message is the
// relay's own explanation, unmodified.
type RelayError struct {
	StatusCode int
	Message    string
}

func (e *RelayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("relay responded with status code %d", e.StatusCode)
	}
	return e.Message
}

type Client struct {
	url    string
	apiKey string
	Client *http.Client
}

func NewClient(url string, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &Client{
		url:    strings.TrimSuffix(url, "/"),
		apiKey: apiKey,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateSponsoredBundle submits calls that the relay pays for from its own balance.
func (c *Client) CreateSponsoredBundle(ctx context.Context, txs []Transaction) (string, error) {
	res := new(sponsoredResponse)
	err := c.do(ctx, http.MethodPost, "/v1/bundle/balance", sponsoredRequest{Transactions: txs}, res)
	if err != nil {
		return "", err
	}
	if res.BundleID == "" {
		return "", fmt.Errorf("relay response is missing bundle id")
	}

	return res.BundleID, nil
}

// CreatePrepaidBundle submits signed calls and returns the gas payment quote.
func (c *Client) CreatePrepaidBundle(ctx context.Context, signer common.Address, txs []Transaction) (*PrepaidBundle, error) {
	res := new(PrepaidBundle)
	err := c.do(ctx, http.MethodPost, "/v1/bundle/prepaid", prepaidRequest{Signer: signer, Transactions: txs}, res)
	if err != nil {
		return nil, err
	}
	if res.BundleID == "" {
		return nil, fmt.Errorf("relay response is missing bundle id")
	}

	return res, nil
}

func (c *Client) SubmitPayment(ctx context.Context, bundleID string, chainID uint64, signedTx []byte) error {
	path := fmt.Sprintf("/v1/bundle/%s/payment", url.PathEscape(bundleID))
	return c.do(ctx, http.MethodPost, path, paymentRequest{ChainID: chainID, SignedTx: signedTx}, nil)
}

func (c *Client) GetBundleStatus(ctx context.Context, bundleID string) (*BundleStatus, error) {
	res := new(BundleStatus)
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/bundle/%s", url.PathEscape(bundleID)), nil, res)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, reader)
	if err != nil {
		return err
	}
	req.Header.Add("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RelayError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

func errorMessage(body []byte) string {
	e := new(errorResponse)
	if err := json.Unmarshal(body, e); err == nil {
		if e.Error != "" {
			return e.Error
		}
		if e.Message != "" {
			return e.Message
		}
	}

	return strings.TrimSpace(string(body))
}
