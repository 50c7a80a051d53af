package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/youruser/ticketrender/internal/monitoring"
	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/ticket"
)

// DefaultQRTimeout bounds the QR fetch; a slow ticket service degrades to
// the placeholder instead of hanging the render.
const DefaultQRTimeout = 8 * time.Second

var errNoFetcher = errors.New("no qr fetcher configured")

// ArtifactCache stores finished artifacts by content key.
type ArtifactCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, b []byte) error
}

// Renderer turns ticket records into PNG or PDF artifacts.
type Renderer struct {
	logo      LogoSource
	qr        qr.Fetcher
	log       *slog.Logger
	qrTimeout time.Duration
	cache     ArtifactCache
	locale    language.Tag
	brand     string
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithQRTimeout sets the QR fetch timeout; zero or negative disables it.
func WithQRTimeout(d time.Duration) Option {
	return func(r *Renderer) { r.qrTimeout = d }
}

func WithCache(c ArtifactCache) Option {
	return func(r *Renderer) { r.cache = c }
}

func WithLocale(tag language.Tag) Option {
	return func(r *Renderer) { r.locale = tag }
}

// WithBrand sets the name printed in the footer copyright line.
func WithBrand(name string) Option {
	return func(r *Renderer) { r.brand = name }
}

// New builds a Renderer. A nil fetcher renders every QR ticket with the
// placeholder.
func New(logo LogoSource, fetcher qr.Fetcher, opts ...Option) *Renderer {
	if logo == nil {
		logo = EmbeddedLogo{}
	}
	r := &Renderer{
		logo:      logo,
		qr:        fetcher,
		log:       slog.Default(),
		qrTimeout: DefaultQRTimeout,
		locale:    language.English,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire gathers the logo and, for QR tickets, the QR raster. A logo
// failure is fatal; a QR failure is recorded in Inputs.QRErr and the render
// carries on with the placeholder.
func (r *Renderer) Acquire(ctx context.Context, rec *ticket.Record, tpl Template) (*Inputs, error) {
	if rec == nil {
		rec = &ticket.Record{}
	}
	in := &Inputs{
		Record:   rec,
		Template: tpl,
		Brand:    r.brand,
		Locale:   r.locale,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		img, err := r.logo.Load(gctx)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrLogoUnavailable, r.logo.Name(), err)
		}
		in.Logo = img
		return nil
	})
	if rec.WantsQR() {
		g.Go(func() error {
			raster, err := r.fetchQR(gctx, rec)
			if err != nil {
				in.QRErr = err
				monitoring.QRFallback(err)
				r.log.Warn("qr unavailable, drawing placeholder",
					"ticket_id", rec.ID.String(),
					"reason", monitoring.FallbackReason(err),
					"error", err)
				return nil
			}
			in.QR = raster
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (r *Renderer) fetchQR(ctx context.Context, rec *ticket.Record) (*qr.Raster, error) {
	if r.qr == nil {
		return nil, errNoFetcher
	}
	id := rec.ID.String()
	if id == "" {
		id = rec.Identifier()
	}
	if r.qrTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.qrTimeout)
		defer cancel()
	}
	return r.qr.Fetch(ctx, id)
}

// RenderPNG renders rec as PNG bytes.
func (r *Renderer) RenderPNG(ctx context.Context, rec *ticket.Record, tpl Template) (*Artifact, error) {
	return r.Render(ctx, rec, tpl, FormatPNG)
}

// RenderPDF renders rec as a single page PDF.
func (r *Renderer) RenderPDF(ctx context.Context, rec *ticket.Record, tpl Template) (*Artifact, error) {
	return r.Render(ctx, rec, tpl, FormatPDF)
}

// Render runs the whole pipeline: acquire, paint, export. An empty template
// means A; unknown templates and formats fail before any metric is recorded.
func (r *Renderer) Render(ctx context.Context, rec *ticket.Record, tpl Template, format Format) (a *Artifact, err error) {
	switch tpl {
	case "":
		tpl = TemplateA
	case TemplateA, TemplateB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, tpl)
	}
	if format != FormatPNG && format != FormatPDF {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	start := time.Now()
	defer func() {
		monitoring.ObserveRender(string(format), string(tpl), err, time.Since(start))
	}()

	in, err := r.Acquire(ctx, rec, tpl)
	if err != nil {
		return nil, err
	}

	key := r.cacheKey(in, format)
	if b, ok := r.cached(ctx, key); ok {
		return &Artifact{Format: format, Bytes: b, Width: CanvasWidth, Height: CanvasHeight}, nil
	}

	frame, err := Paint(in)
	if err != nil {
		return nil, err
	}
	b, err := EncodePNG(frame.Image)
	if err != nil {
		return nil, err
	}
	if format == FormatPDF {
		if b, err = EncodePDF(b, CanvasWidth, CanvasHeight); err != nil {
			return nil, err
		}
	}

	if r.cache != nil && key != "" {
		if err := r.cache.Set(ctx, key, b); err != nil {
			r.log.Warn("artifact cache write failed", "key", key, "error", err)
		}
	}
	r.log.Debug("ticket rendered",
		"ticket_id", in.Record.ID.String(),
		"format", format,
		"template", tpl,
		"qr", frame.QR,
		"bytes", len(b))
	return &Artifact{Format: format, Bytes: b, Width: CanvasWidth, Height: CanvasHeight}, nil
}

func (r *Renderer) cached(ctx context.Context, key string) ([]byte, bool) {
	if r.cache == nil || key == "" {
		return nil, false
	}
	b, ok, err := r.cache.Get(ctx, key)
	switch {
	case err != nil:
		monitoring.CacheLookup("error")
		r.log.Warn("artifact cache read failed", "key", key, "error", err)
		return nil, false
	case !ok:
		monitoring.CacheLookup("miss")
		return nil, false
	}
	monitoring.CacheLookup("hit")
	return b, true
}

// cacheKey identifies an artifact by everything that affects its pixels.
// Renders are deterministic, so equal keys mean equal bytes.
func (r *Renderer) cacheKey(in *Inputs, format Format) string {
	if r.cache == nil {
		return ""
	}
	rec, err := json.Marshal(in.Record)
	if err != nil {
		return ""
	}
	// the logo is hashed by pixels since a file or URL source can change
	// behind the same name
	logo := imaging.Clone(in.Logo)
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00%v\x00", format, in.Template, in.Brand, in.Locale, logo.Bounds().Size())
	h.Write(logo.Pix)
	h.Write([]byte{0})
	h.Write(rec)
	h.Write([]byte{0})
	if in.QR != nil {
		h.Write(in.QR.Bytes)
	}
	return hex.EncodeToString(h.Sum(nil))
}
