// Package email provides the outbound client for the transactional
// email gateway (Postmark wire contract).
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/letterdrop/letterdrop/internal/model"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 10 * time.Second
)

// AuthHeader carries the gateway server token.
const AuthHeader = "X-Postmark-Server-Token"

// GatewayError reports a failed send attempt. StatusCode is zero when the
// failure happened before a response arrived (transport error or timeout);
// the caller is not expected to tell those cases apart.
type GatewayError struct {
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("email gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("email gateway request failed: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// sendEmailRequest is the gateway wire format. Field names are the
// contract: PascalCase, exactly these five keys.
type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Client sends transactional email through the gateway's REST API.
// One attempt per call; retries are the caller's problem.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sender     model.SubscriberEmail
	authToken  string
}

// NewClient creates a gateway client. The timeout bounds the whole
// request, connection establishment included.
func NewClient(baseURL string, sender model.SubscriberEmail, authToken string, timeout time.Duration) *Client {
	return &Client{
		httpClient: newHTTPClient(timeout),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		sender:     sender,
		authToken:  authToken,
	}
}

// SendEmail posts one message to {base_url}/email.
// Any transport error, timeout, or non-2xx response comes back as a
// *GatewayError.
func (c *Client) SendEmail(ctx context.Context, to model.SubscriberEmail, subject, htmlBody, textBody string) error {
	payload := sendEmailRequest{
		From:     c.sender.String(),
		To:       to.String(),
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(AuthHeader, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &GatewayError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Sender returns the configured from address.
func (c *Client) Sender() model.SubscriberEmail {
	return c.sender
}

// newHTTPClient creates an HTTP client configured for gateway calls.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
