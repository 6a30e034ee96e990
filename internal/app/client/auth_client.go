package client

import (
	"bufio"
	"context"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/dto/responses"
	"intake-service/internal/pkg/exceptions"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

func (c *Client) Register(ctx context.Context, request *requests.RegisterUser) (*responses.RegisterUser, error) {
	result := new(responses.RegisterUser)
	err := c.do(ctx, constvars.MethodPost, "/auth/register", request, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	result := new(responses.LoginUser)
	err := c.do(ctx, constvars.MethodPost, "/auth/login", request, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, constvars.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) RefreshSession(ctx context.Context) (*responses.LoginUser, error) {
	result := new(responses.LoginUser)
	err := c.do(ctx, constvars.MethodPost, "/auth/refresh", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) CurrentSession(ctx context.Context) (*responses.Session, error) {
	result := new(responses.Session)
	err := c.do(ctx, constvars.MethodGet, "/auth/session", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ForgotPassword(ctx context.Context, request *requests.ForgotPassword) error {
	return c.do(ctx, constvars.MethodPost, "/auth/forgot-password", request, nil)
}

func (c *Client) ResetPassword(ctx context.Context, request *requests.ResetPassword) error {
	return c.do(ctx, constvars.MethodPost, "/auth/reset-password", request, nil)
}

// WatchSession follows the server's session event stream and calls onEvent
// for every event until ctx is done or the server closes the stream.
func (c *Client) WatchSession(ctx context.Context, onEvent func(responses.SessionEvent)) error {
	req, err := c.newRequest(ctx, constvars.MethodGet, "/auth/session/events", nil)
	if err != nil {
		return err
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMETextEventStream)

	// The stream outlives the per-request timeout of the regular client.
	streamClient := &http.Client{Transport: c.HTTPClient.Transport}
	resp, err := c.sendWith(streamClient, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		var event responses.SessionEvent
		err = json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &event)
		if err != nil {
			return exceptions.ErrDecodeHTTPResponse(err)
		}
		onEvent(event)
	}

	if ctx.Err() != nil {
		return nil
	}
	return scanner.Err()
}
