package sms

import (
	"context"
	"fmt"
	"strings"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/provider"
)

// Gateway sends transactional SMS through the provider's JSON API.
// A nil-configured gateway (no base URL) refuses to send rather than
// silently dropping codes.
type Gateway struct {
	cl   *provider.Client
	from string
}

func New(base, key, from string) *Gateway {
	if base == "" {
		return &Gateway{from: from}
	}
	return &Gateway{cl: provider.New("sms", base, "Authorization", "Bearer "+key, 5), from: from}
}

type sendReq struct {
	From string `json:"from"`
	To   string `json:"to"`
	Body string `json:"body"`
}

func (g *Gateway) SendSMS(ctx context.Context, to, body string) error {
	if g.cl == nil {
		return fmt.Errorf("sms: gateway not configured")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("sms: empty recipient")
	}
	return g.cl.PostJSON(ctx, "/messages", sendReq{From: g.from, To: to, Body: body}, nil)
}
