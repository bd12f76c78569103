package email

import (
	"context"
	"fmt"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/provider"
)

// Sender posts transactional email to the provider's JSON API. Callers treat
// email as best-effort: failures are logged at the call site, never bubbled
// into the primary request.
type Sender struct {
	cl   *provider.Client
	from string
}

func New(base, key, from string) *Sender {
	if base == "" {
		return &Sender{from: from}
	}
	return &Sender{cl: provider.New("email", base, "Authorization", "Bearer "+key, 5), from: from}
}

type sendReq struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

func (s *Sender) SendEmail(ctx context.Context, to, subject, body string) error {
	if s.cl == nil {
		return fmt.Errorf("email: sender not configured")
	}
	return s.cl.PostJSON(ctx, "/send", sendReq{From: s.from, To: to, Subject: subject, Text: body}, nil)
}
