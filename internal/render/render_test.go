package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/ticket"
)

const longTitle = "Very Long Conference Title That Should Wrap Across Two Lines And Then Truncate With An Ellipsis Because It Is Too Long"

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func onePixelPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func qrServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fullRecord() *ticket.Record {
	return &ticket.Record{
		ID:             "t1",
		TicketNumber:   "TCK-001",
		EventTitle:     "Summer Fest",
		EventStartDate: "2026-07-14",
		StartTime:      "19:30",
		EventVenue:     "Riverside Arena",
		Status:         "active",
		TicketType:     "vip",
		SeatRow:        "C",
		SeatNumber:     "14",
		HolderName:     "Jane Doe",
		OrderReference: "ORD-7788",
		TotalAmount:    ticket.NewAmount(250000),
		Currency:       "LAK",
		DigitalFormat:  "qr_code",
	}
}

func localRenderer(opts ...Option) *Renderer {
	opts = append([]Option{WithLogger(quietLog)}, opts...)
	return New(EmbeddedLogo{}, qr.LocalFetcher{Size: 200}, opts...)
}

func paint(t *testing.T, r *Renderer, rec *ticket.Record, tpl Template) *Frame {
	t.Helper()
	in, err := r.Acquire(context.Background(), rec, tpl)
	require.NoError(t, err)
	f, err := Paint(in)
	require.NoError(t, err)
	return f
}

func labels(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Label)
	}
	return out
}

func rowValue(rows []Row, label string) (string, bool) {
	for _, r := range rows {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

func TestRender_Deterministic(t *testing.T) {
	r := localRenderer()
	for _, tpl := range []Template{TemplateA, TemplateB} {
		a, err := r.RenderPNG(context.Background(), fullRecord(), tpl)
		require.NoError(t, err)
		b, err := r.RenderPNG(context.Background(), fullRecord(), tpl)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a.Bytes, b.Bytes), "template %s not byte-identical", tpl)

		img, err := png.Decode(bytes.NewReader(a.Bytes))
		require.NoError(t, err)
		assert.Equal(t, image.Pt(CanvasWidth, CanvasHeight), img.Bounds().Size())
	}
}

func TestRender_TemplatesDiffer(t *testing.T) {
	r := localRenderer()
	a, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	b, err := r.RenderPNG(context.Background(), fullRecord(), TemplateB)
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a.Bytes, b.Bytes))
}

func TestPaint_FullRecord(t *testing.T) {
	f := paint(t, localRenderer(), fullRecord(), TemplateA)

	assert.Equal(t, 1, f.TitleLines)
	assert.Equal(t, []string{"ACTIVE", "VIP"}, f.Pills)
	assert.Equal(t, []string{"DATE", "TIME", "VENUE", "SEAT", "TICKET ID"}, labels(f.InfoRows))
	date, _ := rowValue(f.InfoRows, "DATE")
	assert.Equal(t, "Tue, 14 Jul 2026", date)
	seat, _ := rowValue(f.InfoRows, "SEAT")
	assert.Equal(t, "Row C · Seat 14", seat)
	assert.Equal(t, QRImage, f.QR)

	price, ok := rowValue(f.FooterRows, "PRICE")
	require.True(t, ok)
	assert.Equal(t, "LAK 250,000", price)
	attendee, _ := rowValue(f.FooterRows, "ATTENDEE")
	assert.Equal(t, "Jane Doe", attendee)
	order, _ := rowValue(f.FooterRows, "ORDER REF")
	assert.Equal(t, "ORD-7788", order)
}

func TestPaint_QRFetchFailureFallsBack(t *testing.T) {
	srv := qrServer(t, `boom`, http.StatusBadGateway)
	r := New(EmbeddedLogo{}, qr.NewHTTPFetcher(srv.URL, srv.Client()), WithLogger(quietLog))

	in, err := r.Acquire(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.Nil(t, in.QR)
	assert.Error(t, in.QRErr)

	f, err := Paint(in)
	require.NoError(t, err)
	assert.Equal(t, QRPlaceholder, f.QR)

	a, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.NotEmpty(t, a.Bytes)
}

func TestPaint_QRDecodeFailureFallsBack(t *testing.T) {
	srv := qrServer(t, `{"qr_code":"data:image/png;base64,bm90IGEgcG5n"}`, http.StatusOK)
	r := New(EmbeddedLogo{}, qr.NewHTTPFetcher(srv.URL, srv.Client()), WithLogger(quietLog))
	f := paint(t, r, fullRecord(), TemplateB)
	assert.Equal(t, QRPlaceholder, f.QR)
}

func TestPaint_QRTimeoutFallsBack(t *testing.T) {
	slow := qr.FetcherFunc(func(ctx context.Context, id string) (*qr.Raster, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	r := New(EmbeddedLogo{}, slow, WithLogger(quietLog), WithQRTimeout(20*time.Millisecond))
	in, err := r.Acquire(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.ErrorIs(t, in.QRErr, context.DeadlineExceeded)
}

func TestPaint_NonQRFormatsSkipFetch(t *testing.T) {
	var calls int
	var mu sync.Mutex
	counting := qr.FetcherFunc(func(ctx context.Context, id string) (*qr.Raster, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return qr.LocalFetcher{}.Fetch(ctx, id)
	})
	r := New(EmbeddedLogo{}, counting, WithLogger(quietLog))
	for _, df := range []ticket.Text{"nfc", "rfid", "barcode", "none", ""} {
		rec := fullRecord()
		rec.DigitalFormat = df
		f := paint(t, r, rec, TemplateA)
		assert.Equal(t, QRPlaceholder, f.QR, df)
	}
	assert.Zero(t, calls)
}

func TestPaint_NoFetcherFallsBack(t *testing.T) {
	r := New(EmbeddedLogo{}, nil, WithLogger(quietLog))
	in, err := r.Acquire(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.ErrorIs(t, in.QRErr, errNoFetcher)
}

func TestPaint_SeatOmitted(t *testing.T) {
	rec := fullRecord()
	rec.SeatNumber = ""
	f := paint(t, localRenderer(), rec, TemplateA)
	assert.Equal(t, []string{"DATE", "TIME", "VENUE", "TICKET ID"}, labels(f.InfoRows))

	// slots are fixed, so the remaining rows paint the same pixels
	with := paint(t, localRenderer(), fullRecord(), TemplateA)
	row := func(img image.Image, slot int) []byte {
		info := with.Layout.Info
		y := int(info.Y) + 20 + slot*infoRowHeight
		var b []byte
		for yy := y; yy < y+infoRowHeight-4; yy++ {
			for x := int(info.X) + 4; x < int(info.Right())-4; x++ {
				r, g, bb, a := img.At(x, yy).RGBA()
				b = append(b, byte(r>>8), byte(g>>8), byte(bb>>8), byte(a>>8))
			}
		}
		return b
	}
	for _, slot := range []int{0, 1, 2, 4} {
		assert.Equal(t, row(with.Image, slot), row(f.Image, slot), "slot %d moved", slot)
	}
	assert.NotEqual(t, row(with.Image, 3), row(f.Image, 3))
}

func TestPaint_EmptyRecordNeverFails(t *testing.T) {
	r := localRenderer()
	for _, rec := range []*ticket.Record{nil, {}} {
		in, err := r.Acquire(context.Background(), rec, TemplateB)
		require.NoError(t, err)
		f, err := Paint(in)
		require.NoError(t, err)
		assert.Zero(t, f.TitleLines)
		assert.Empty(t, f.Pills)
		assert.Empty(t, f.InfoRows)
		assert.Equal(t, QRPlaceholder, f.QR)
		for _, row := range f.FooterRows {
			assert.Equal(t, "—", row.Value, row.Label)
		}
	}
}

func TestPaint_MoneyFallback(t *testing.T) {
	rec := &ticket.Record{ID: "t9", TotalAmount: ticket.NewAmount(1234567), Currency: "usd"}
	f := paint(t, localRenderer(), rec, TemplateA)
	price, _ := rowValue(f.FooterRows, "PRICE")
	assert.Equal(t, "USD 1,234,567", price)

	rec = &ticket.Record{ID: "t9", Currency: "usd"}
	f = paint(t, localRenderer(), rec, TemplateA)
	price, ok := rowValue(f.FooterRows, "PRICE")
	require.True(t, ok)
	assert.Equal(t, "—", price)
}

func TestWrapLines_TitleFontTruncation(t *testing.T) {
	fb, err := newFontBook()
	require.NoError(t, err)
	defer fb.close()
	dc := gg.NewContext(CanvasWidth, CanvasHeight)
	dc.SetFontFace(fb.face(styleTitle))

	w, _ := dc.MeasureString(longTitle)
	require.Greater(t, w, 2.0*titleMaxWidth)

	lines := WrapLines(dc, longTitle, titleMaxWidth, titleMaxLines)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ellipsis))
	for _, l := range lines {
		lw, _ := dc.MeasureString(l)
		assert.LessOrEqual(t, lw, float64(titleMaxWidth))
	}

	assert.Len(t, WrapLines(dc, "Summer Fest", titleMaxWidth, titleMaxLines), 1)
}

func TestRender_EndToEndLongTitle(t *testing.T) {
	body, err := json.Marshal(qr.Response{QRCode: qr.DataURL(onePixelPNG(t))})
	require.NoError(t, err)
	srv := qrServer(t, string(body), http.StatusOK)
	r := New(EmbeddedLogo{}, qr.NewHTTPFetcher(srv.URL, srv.Client()), WithLogger(quietLog))

	var rec ticket.Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "t1",
		"ticket_number": "TCK-001",
		"event_title": "`+longTitle+`",
		"digital_format": "qr_code"
	}`), &rec))

	f := paint(t, r, &rec, TemplateA)
	assert.Equal(t, 2, f.TitleLines)
	assert.Equal(t, QRImage, f.QR)

	// the 1x1 black pixel is scaled up to fill the frame
	fr := f.Layout.QRFrame
	cr, cg, cb, _ := f.Image.At(int(fr.CenterX()), int(fr.CenterY())).RGBA()
	assert.Zero(t, cr|cg|cb)

	a, err := r.RenderPNG(context.Background(), &rec, TemplateA)
	require.NoError(t, err)
	assert.NotEmpty(t, a.Bytes)
	assert.Equal(t, "ticket-TCK-001.png", a.Filename(&rec))
	assert.Equal(t, "image/png", a.ContentType())
}

var mediaBox = regexp.MustCompile(`/MediaBox \[0 0 ([0-9.]+) ([0-9.]+)\]`)

func TestRender_PDFPageMatchesCanvas(t *testing.T) {
	r := localRenderer()
	a, err := r.RenderPDF(context.Background(), fullRecord(), TemplateB)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(a.Bytes, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", a.ContentType())
	assert.Equal(t, "ticket-TCK-001.pdf", a.Filename(fullRecord()))

	m := mediaBox.FindSubmatch(a.Bytes)
	require.NotNil(t, m)
	assert.Equal(t, "1200.00", string(m[1]))
	assert.Equal(t, "650.00", string(m[2]))

	b, err := r.RenderPDF(context.Background(), fullRecord(), TemplateB)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes, b.Bytes)
}

func TestRender_LogoFailureIsFatal(t *testing.T) {
	r := New(FileLogo("/nonexistent/logo.png"), qr.LocalFetcher{}, WithLogger(quietLog))
	a, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrLogoUnavailable)

	_, err = Paint(&Inputs{Record: fullRecord()})
	assert.ErrorIs(t, err, ErrLogoUnavailable)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := localRenderer().Render(context.Background(), fullRecord(), TemplateA, Format("gif"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

type memCache struct {
	mu   sync.Mutex
	m    map[string][]byte
	gets int
	err  error
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	b, ok := c.m[key]
	return b, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string][]byte{}
	}
	c.m[key] = b
	return nil
}

func TestRender_Cache(t *testing.T) {
	c := &memCache{}
	r := localRenderer(WithCache(c))

	a, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	require.Len(t, c.m, 1)

	b, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes, b.Bytes)
	assert.Len(t, c.m, 1)

	_, err = r.RenderPDF(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.Len(t, c.m, 2)

	other := fullRecord()
	other.SeatNumber = "15"
	_, err = r.RenderPNG(context.Background(), other, TemplateA)
	require.NoError(t, err)
	assert.Len(t, c.m, 3)
}

func writeLogo(t *testing.T, path string, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRender_CacheFollowsLogoContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	writeLogo(t, path, color.NRGBA{R: 255, A: 255})

	c := &memCache{}
	r := New(FileLogo(path), qr.LocalFetcher{Size: 200}, WithLogger(quietLog), WithCache(c))
	red, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)

	writeLogo(t, path, color.NRGBA{B: 255, A: 255})
	blue, err := r.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.NotEqual(t, red.Bytes, blue.Bytes)
	assert.Len(t, c.m, 2)

	uncached := New(FileLogo(path), qr.LocalFetcher{Size: 200}, WithLogger(quietLog))
	fresh, err := uncached.RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.Equal(t, fresh.Bytes, blue.Bytes)
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := localRenderer()
	_, err := r.Render(context.Background(), fullRecord(), Template("Z"), FormatPNG)
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	empty, err := r.Render(context.Background(), fullRecord(), "", FormatPNG)
	require.NoError(t, err)
	a, err := r.Render(context.Background(), fullRecord(), TemplateA, FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, a.Bytes, empty.Bytes)
}

func TestRender_CacheErrorsDoNotFailRender(t *testing.T) {
	c := &memCache{err: errors.New("redis down")}
	a, err := localRenderer(WithCache(c)).RenderPNG(context.Background(), fullRecord(), TemplateA)
	require.NoError(t, err)
	assert.NotEmpty(t, a.Bytes)
	assert.Equal(t, 1, c.gets)
}
