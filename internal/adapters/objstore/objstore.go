package objstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/observability"
)

// Bucket talks to the managed storage service's bucket REST API:
// PUT /object/{bucket}/{key}, DELETE /object/{bucket}/{key},
// GET /object/list/{bucket}?prefix=... Bodies are raw bytes, so this client
// does not share the JSON provider client.
type Bucket struct {
	base   string
	key    string
	bucket string
	hc     *http.Client
	rl     *rate.Limiter
}

func New(base, key, bucket string) *Bucket {
	return &Bucket{
		base:   strings.TrimRight(base, "/"),
		key:    key,
		bucket: bucket,
		hc:     &http.Client{Timeout: 30 * time.Second},
		rl:     rate.NewLimiter(rate.Limit(10), 10),
	}
}

func (b *Bucket) Configured() bool { return b.base != "" }

// Upload stores data under key and returns the object's public URL.
func (b *Bucket) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := b.do(ctx, http.MethodPut, "/object/"+b.bucket+"/"+key, data, contentType, nil)
	if err != nil {
		return "", err
	}
	return b.base + "/object/public/" + b.bucket + "/" + key, nil
}

func (b *Bucket) Delete(ctx context.Context, key string) error {
	return b.do(ctx, http.MethodDelete, "/object/"+b.bucket+"/"+key, nil, "", nil)
}

// List returns the keys under prefix.
func (b *Bucket) List(ctx context.Context, prefix string) ([]string, error) {
	var out []struct {
		Name string `json:"name"`
	}
	path := "/object/list/" + b.bucket + "?prefix=" + prefix
	if err := b.do(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(out))
	for _, o := range out {
		keys = append(keys, o.Name)
	}
	return keys, nil
}

func (b *Bucket) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	if b.base == "" {
		return fmt.Errorf("objstore: not configured")
	}
	if err := b.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		var rdr io.Reader
		if body != nil {
			rdr = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, b.base+path, rdr)
		if err != nil {
			return err
		}
		if b.key != "" {
			req.Header.Set("Authorization", "Bearer "+b.key)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		start := time.Now()
		resp, err := b.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}
		observability.ObserveProvider("objstore", method, resp.StatusCode, time.Since(start))

		switch {
		case resp.StatusCode == http.StatusNotFound:
			// deleting what is already gone is fine
			resp.Body.Close()
			if method == http.MethodDelete {
				return nil
			}
			return fmt.Errorf("objstore: %s not found", path)

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if out == nil {
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("objstore: remote %d", resp.StatusCode)
			continue

		default:
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return fmt.Errorf("objstore: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		}
	}
	return lastErr
}
