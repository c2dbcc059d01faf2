package paynow

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kudzaim/paynow-relay/internal/domain/payment"
)

// Paynow's initiate-transaction interface is a form-encoded POST whose fields
// are signed with an uppercase hex SHA-512 over the concatenated values plus
// the integration key. The response is a URL-encoded status=Ok|Error body.

const (
	statusMessage    = "Message"
	maxResponseBytes = 1 << 20
)

type Config struct {
	IntegrationID  string
	IntegrationKey string
	InitiateURL    string
	ResultURL      string
	ReturnURL      string
	Timeout        time.Duration
}

// Client holds only static credentials and is safe to share across requests.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.IntegrationID == "" || cfg.IntegrationKey == "" {
		return nil, fmt.Errorf("paynow: integration id and key are required")
	}
	if _, err := url.ParseRequestURI(cfg.InitiateURL); err != nil {
		return nil, fmt.Errorf("paynow: invalid initiate URL: %w", err)
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Submit posts the draft to the initiate-transaction interface. The context
// bounds and cancels the call alongside the client's own timeout.
func (c *Client) Submit(ctx context.Context, d payment.Draft) (*payment.Result, error) {
	// Field order matters: the hash covers the values in this exact order.
	fields := [][2]string{
		{"id", c.cfg.IntegrationID},
		{"reference", d.Reference},
		{"amount", formatAmount(d.Total())},
		{"additionalinfo", itemNames(d)},
		{"returnurl", c.cfg.ReturnURL},
		{"resulturl", c.cfg.ResultURL},
		{"authemail", d.Email},
		{"status", statusMessage},
	}

	form := url.Values{}
	var concat strings.Builder
	for _, f := range fields {
		form.Set(f[0], f[1])
		concat.WriteString(f[1])
	}
	form.Set("hash", sign(concat.String(), c.cfg.IntegrationKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.InitiateURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("paynow: unexpected status %d", resp.StatusCode)
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("paynow: malformed response: %w", err)
	}

	switch strings.ToLower(values.Get("status")) {
	case "ok":
		redirect := values.Get("browserurl")
		poll := values.Get("pollurl")
		if redirect == "" || poll == "" {
			return nil, fmt.Errorf("paynow: ok response missing browserurl or pollurl")
		}
		return &payment.Result{Success: true, RedirectURL: redirect, PollURL: poll}, nil
	case "error":
		return &payment.Result{Success: false, Reason: values.Get("error")}, nil
	default:
		return nil, fmt.Errorf("paynow: unrecognized response status %q", values.Get("status"))
	}
}

func sign(concatenated, integrationKey string) string {
	sum := sha512.Sum512([]byte(concatenated + integrationKey))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func itemNames(d payment.Draft) string {
	names := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		names = append(names, item.Name)
	}
	return strings.Join(names, ", ")
}
