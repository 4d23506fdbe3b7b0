package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/colorpage/colorpage/pkg/lineart"
)

// Remote converts through the hosted conversion service. Health probes get a
// short deadline of their own; the conversion call runs as long as the
// caller's context allows.
type Remote struct {
	BaseURL      string
	Client       *http.Client
	ProbeTimeout time.Duration
}

// NewRemote returns a client for the service at baseURL.
func NewRemote(baseURL string) *Remote {
	return &Remote{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		Client:       &http.Client{},
		ProbeTimeout: 3 * time.Second,
	}
}

// wire types for the /convert endpoint
type convertRequest struct {
	Image      string `json:"image"`
	Threshold  int    `json:"threshold"`
	BlurPasses int    `json:"blur_passes"`
	Thickness  int    `json:"thickness"`
	MaxDim     int    `json:"max_dim"`
}

type convertResponse struct {
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// readDetail extracts the service's {"detail": ...} error message, falling
// back to the raw body.
func readDetail(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}

// Healthy probes GET /health and reports whether the service answered in time
// with an OK status.
func (r *Remote) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.ProbeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health probe: status %d", resp.StatusCode)
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	if status.Status != "healthy" && status.Status != "ok" {
		return fmt.Errorf("health probe: status %q", status.Status)
	}
	return nil
}

// Convert posts src to the service and returns the decoded result.
func (r *Remote) Convert(ctx context.Context, src []byte, opts lineart.Options) (*Result, error) {
	opts = opts.Clamp()
	payload, err := json.Marshal(convertRequest{
		Image:      EncodeDataURL(src),
		Threshold:  opts.Threshold,
		BlurPasses: opts.BlurPasses,
		Thickness:  opts.Thickness,
		MaxDim:     opts.MaxDim,
	})
	if err != nil {
		return nil, fmt.Errorf("remote convert: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+"/convert", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("remote convert: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote convert: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		if detail := readDetail(resp.Body); detail != "" {
			return nil, fmt.Errorf("remote convert: status %d: %s", resp.StatusCode, detail)
		}
		return nil, fmt.Errorf("remote convert: status %d", resp.StatusCode)
	}
	var cr convertResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("remote convert: decode response: %w", err)
	}
	data, err := DecodeDataURL(cr.Image)
	if err != nil {
		return nil, fmt.Errorf("remote convert: %w", err)
	}
	return &Result{PNG: data, Width: cr.Width, Height: cr.Height}, nil
}
