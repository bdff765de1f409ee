package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// Sender dispatches transactional emails. Nil or an empty API key is a no-op,
// so environments without credentials still work.
type Sender interface {
	SendPasswordReset(ctx context.Context, toEmail, resetLink string) error
	SendInquiryNotification(ctx context.Context, toEmail, propertyTitle, fromName, message string) error
	SendSearchDigest(ctx context.Context, toEmail, searchName string, matchCount int) error
}

type brevoSendRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BrevoClient sends emails via the Brevo transactional API.
type BrevoClient struct {
	APIKey   string
	MailFrom string
	Client   *http.Client
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@karoo.properties"
}

func (c *BrevoClient) send(ctx context.Context, toEmail, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := brevoSendRequest{
		Sender:      brevoAddress{Email: c.from(), Name: "Karoo Properties"},
		To:          []brevoAddress{{Email: toEmail}},
		Subject:     subject,
		HTMLContent: html,
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPI, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *BrevoClient) SendPasswordReset(ctx context.Context, toEmail, resetLink string) error {
	html := fmt.Sprintf(`<p>A password reset was requested for your account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link expires in one hour. If you did not request this, ignore this email.</p>`, resetLink)
	return c.send(ctx, toEmail, "Reset your Karoo Properties password", html)
}

func (c *BrevoClient) SendInquiryNotification(ctx context.Context, toEmail, propertyTitle, fromName, message string) error {
	html := fmt.Sprintf(`<p>New inquiry on <strong>%s</strong> from %s:</p><blockquote>%s</blockquote>`,
		propertyTitle, fromName, message)
	return c.send(ctx, toEmail, "New inquiry: "+propertyTitle, html)
}

func (c *BrevoClient) SendSearchDigest(ctx context.Context, toEmail, searchName string, matchCount int) error {
	html := fmt.Sprintf(`<p>Your saved search <strong>%s</strong> currently matches %d properties.</p>`,
		searchName, matchCount)
	return c.send(ctx, toEmail, "Saved search update: "+searchName, html)
}
