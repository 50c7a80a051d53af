package qr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/youruser/ticketrender/internal/util"
)

// Fetcher resolves the QR raster of a ticket.
type Fetcher interface {
	Fetch(ctx context.Context, ticketID string) (*Raster, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, ticketID string) (*Raster, error)

func (f FetcherFunc) Fetch(ctx context.Context, ticketID string) (*Raster, error) {
	return f(ctx, ticketID)
}

// Response is the body of GET /tickets/{id}/qr.
type Response struct {
	QRCode string `json:"qr_code"`
}

// HTTPFetcher calls the ticket service. The qr_code value may be a data: URL
// or a plain URL, which is then downloaded with the same client.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, ticketID string) (*Raster, error) {
	endpoint := f.BaseURL + "/tickets/" + url.PathEscape(ticketID) + "/qr"
	body, err := util.GetBytes(ctx, f.Client, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch qr for %s: %w", ticketID, err)
	}
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode qr response: %w", err)
	}
	return f.resolve(ctx, resp.QRCode)
}

func (f *HTTPFetcher) resolve(ctx context.Context, ref string) (*Raster, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrNoQRCode
	}
	if IsDataURL(ref) {
		b, err := ParseDataURL(ref)
		if err != nil {
			return nil, err
		}
		return Decode(b)
	}
	b, err := util.GetBytes(ctx, f.Client, ref)
	if err != nil {
		return nil, fmt.Errorf("download qr image: %w", err)
	}
	return Decode(b)
}

// LocalFetcher generates the QR in-process instead of asking a service.
type LocalFetcher struct {
	Size int
}

func (f LocalFetcher) Fetch(ctx context.Context, ticketID string) (*Raster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(ticketID) == "" {
		return nil, ErrNoQRCode
	}
	b, err := GeneratePNG(Payload(ticketID), f.Size)
	if err != nil {
		return nil, fmt.Errorf("generate qr: %w", err)
	}
	return Decode(b)
}
