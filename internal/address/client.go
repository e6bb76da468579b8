package address

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/i9team/guilherme-ecommerce/pkg/errors"
	"github.com/i9team/guilherme-ecommerce/pkg/masks"
)

const (
	defaultBaseURL              = "https://viacep.com.br"
	responseBodyReadLimit int64 = 1 << 16
)

// Result is the resolved address for a postal code.
type Result struct {
	PostalCode   string `json:"postalCode"`
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// Client resolves Brazilian postal codes against a ViaCEP-compatible API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the lookup base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the postal code lookup client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	return client
}

// errFlag absorbs ViaCEP's inconsistent "erro" field, which shows up as both
// the boolean true and the string "true" depending on the deployment.
type errFlag bool

func (f *errFlag) UnmarshalJSON(b []byte) error {
	*f = strings.Trim(string(b), `"`) == "true"
	return nil
}

type viaCEPResponse struct {
	CEP          string  `json:"cep"`
	Street       string  `json:"logradouro"`
	Neighborhood string  `json:"bairro"`
	City         string  `json:"localidade"`
	State        string  `json:"uf"`
	NotFound     errFlag `json:"erro"`
}

// Lookup resolves a postal code, masked or raw. Unknown codes return
// CodeNotFound; transport failures return CodeDependency.
func (c *Client) Lookup(ctx context.Context, postalCode string) (*Result, error) {
	digits := masks.Unmask(postalCode)
	if !masks.PostalCodeComplete(digits) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "postal code must have 8 digits")
	}

	endpoint := fmt.Sprintf("%s/ws/%s/json/", strings.TrimRight(c.baseURL, "/"), digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build lookup request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "postal code lookup")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "postal code not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "postal code lookup failed").WithDetails(map[string]any{"status": resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read lookup response")
	}

	var payload viaCEPResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode lookup response")
	}
	if bool(payload.NotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "postal code not found")
	}

	return &Result{
		PostalCode:   digits,
		Street:       payload.Street,
		Neighborhood: payload.Neighborhood,
		City:         payload.City,
		State:        payload.State,
	}, nil
}
