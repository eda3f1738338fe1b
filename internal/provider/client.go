package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"aviatickets/internal/config"
	"aviatickets/internal/domain"
	"aviatickets/internal/utils"
)

// Onelya endpoints consumed by this backend.
const (
	EndpointReservationCreate  = "/Order/V1/Reservation/Create"
	EndpointReservationConfirm = "/Order/V1/Reservation/Confirm"
	EndpointBlankAvia          = "/Avia/V1/Reservation/Blank"
	EndpointBlankOrder         = "/Order/V1/Reservation/Blank"
	EndpointRoutePricing       = "/Avia/V1/Search/RoutePricing"
)

// ResponseKind declares what the caller expects back from an endpoint.
type ResponseKind string

const (
	KindJSON   ResponseKind = "json"
	KindBinary ResponseKind = "binary"
)

// Response is a successful provider reply.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client is the thin, typed Onelya HTTP transport. It signs every call
// with basic auth plus the point-of-sale header, applies one bounded
// timeout, classifies failures into domain.ProviderError and never
// retries: fallback policy belongs to the callers.
type Client struct {
	baseURL    string
	pos        string
	authHeader string
	configured bool
	http       *http.Client
}

func New(env config.Env) *Client {
	token := base64.StdEncoding.EncodeToString([]byte(env.OnelyaLogin + ":" + env.OnelyaPass))
	return &Client{
		baseURL:    strings.TrimRight(env.OnelyaBaseURL, "/"),
		pos:        env.OnelyaPos,
		authHeader: "Basic " + token,
		configured: env.ProviderConfigured(),
		http:       &http.Client{Timeout: env.OnelyaTimeout},
	}
}

// Configured reports whether credentials were supplied at startup.
func (c *Client) Configured() bool { return c.configured }

// Pos returns the point-of-sale id; some endpoints want it in the body too.
func (c *Client) Pos() string { return c.pos }

// Call posts a JSON payload to an endpoint and returns the raw response.
// Failures come back as domain.ProviderError with kind transport (no
// response), http (non-2xx) or malformed (response kind mismatch).
func (c *Client) Call(ctx context.Context, endpoint string, payload any, kind ResponseKind) (Response, error) {
	if !c.configured {
		err := domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint, Err: fmt.Errorf("provider not configured")}
		utils.LogEvent("", "onelya", "call", fmt.Sprintf("endpoint=%s outcome=skipped_unconfigured", endpoint))
		return Response{}, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Pos", c.pos)
	req.Header.Set("Content-Type", "application/json")
	// Gzip is negotiated by the Transport, which then decompresses the
	// body before it reaches classification. Setting Accept-Encoding here
	// would turn that off and hand gzip bytes to the callers.

	res, err := c.http.Do(req)
	if err != nil {
		utils.LogEvent("", "onelya", "call", fmt.Sprintf("endpoint=%s outcome=transport_error", endpoint))
		return Response{}, domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		utils.LogEvent("", "onelya", "call", fmt.Sprintf("endpoint=%s outcome=read_error", endpoint))
		return Response{}, domain.ProviderError{Kind: domain.ProviderTransport, Endpoint: endpoint, Err: err}
	}

	// Log endpoint, outcome and size only; request/response payloads may
	// carry passenger contact data.
	utils.LogEvent("", "onelya", "call", fmt.Sprintf("endpoint=%s status=%d bytes=%d", endpoint, res.StatusCode, len(data)))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return Response{}, domain.ProviderError{Kind: domain.ProviderHTTP, Endpoint: endpoint, Status: res.StatusCode, Body: data}
	}

	if kind == KindJSON && !json.Valid(data) {
		return Response{}, domain.ProviderError{Kind: domain.ProviderMalformed, Endpoint: endpoint, Status: res.StatusCode, Body: data}
	}

	return Response{
		Status:      res.StatusCode,
		ContentType: res.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}
