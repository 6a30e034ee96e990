package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 15 * time.Second

// Client talks to the intake API. It carries the deployment API key on every
// request and the session token once one is set.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Log        *zap.Logger

	mu    sync.RWMutex
	token string
}

// NewClient builds a client for baseURL, which must include the endpoint
// prefix and version, e.g. http://localhost:8080/api/v1.
func NewClient(baseURL, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: defaultRequestTimeout},
		Log:        logger,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	if body != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	req.Header.Set(constvars.HeaderAPIKey, c.APIKey)
	if token := c.Token(); token != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)
	}
	return req, nil
}

// do sends a JSON request and decodes the data field of the response
// envelope into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		return exceptions.ErrDecodeHTTPResponse(err)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	err = json.Unmarshal(envelope.Data, out)
	if err != nil {
		return exceptions.ErrDecodeHTTPResponse(err)
	}
	return nil
}

// doText sends a request whose successful response is plain text.
func (c *Client) doText(ctx context.Context, method, path string) (string, error) {
	req, err := c.newRequest(ctx, method, path, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.send(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", exceptions.ErrDecodeHTTPResponse(err)
	}
	return string(text), nil
}

// send performs req and turns any non-2xx response into the CustomError the
// server described. The caller closes the body of a successful response.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	return c.sendWith(c.HTTPClient, req)
}

func (c *Client) sendWith(httpClient *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		c.Log.Debug("client.send transport failure",
			zap.String(constvars.LoggingMethodKey, req.Method),
			zap.String(constvars.LoggingEndpointKey, req.URL.Path),
			zap.Error(err),
		)
		return nil, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	c.Log.Debug("client.send API error",
		zap.String(constvars.LoggingMethodKey, req.Method),
		zap.String(constvars.LoggingEndpointKey, req.URL.Path),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
	)

	var errorBody responses.ErrorResponse
	bodyBytes, err := io.ReadAll(resp.Body)
	if err == nil {
		err = json.Unmarshal(bodyBytes, &errorBody)
	}
	if err != nil || errorBody.Message == "" {
		return nil, exceptions.FromResponse(
			resp.StatusCode,
			"",
			constvars.ErrClientSomethingWrongWithApplication,
			fmt.Sprintf(constvars.ErrDevUnexpectedStatusCode, resp.StatusCode),
		)
	}
	return nil, exceptions.FromResponse(resp.StatusCode, errorBody.Code, errorBody.Message, errorBody.DevMessage)
}
