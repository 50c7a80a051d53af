package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/render"
	"github.com/youruser/ticketrender/internal/ticket"
)

// maxQRSize caps the size query parameter of the QR endpoints.
const maxQRSize = 2048

type Handler struct {
	renderer *render.Renderer
	log      *slog.Logger
}

func NewHandler(r *render.Renderer, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{renderer: r, log: log}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// renderTicket takes a ticket record as the JSON body and answers with the
// rendered artifact as a download.
func (h *Handler) renderTicket(c *gin.Context) {
	tpl, err := render.ParseTemplate(c.Query("template"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var rec ticket.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket record: " + err.Error()})
		return
	}

	a, err := h.renderer.Render(c.Request.Context(), &rec, tpl, format)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, render.ErrUnknownFormat) || errors.Is(err, render.ErrUnknownTemplate) {
			status = http.StatusBadRequest
		}
		h.log.Error("render failed",
			"ticket_id", rec.ID.String(),
			"format", format,
			"template", tpl,
			"error", err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+a.Filename(&rec)+`"`)
	c.Data(http.StatusOK, a.ContentType(), a.Bytes)
}

// ticketQR serves the QR service contract locally so the renderer can be
// pointed at its own API.
func (h *Handler) ticketQR(c *gin.Context) {
	size, ok := sizeParam(c)
	if !ok {
		return
	}
	r, err := qr.LocalFetcher{Size: size}.Fetch(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, qr.Response{QRCode: qr.DataURL(r.Bytes)})
}

// qr returns a PNG of a QR for the "text" query param.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = qr.Payload("example")
	}
	size, ok := sizeParam(c)
	if !ok {
		return
	}
	b, err := qr.GeneratePNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func sizeParam(c *gin.Context) (int, bool) {
	s := c.Query("size")
	if s == "" {
		return qr.DefaultSize, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > maxQRSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "size must be between 1 and " + strconv.Itoa(maxQRSize)})
		return 0, false
	}
	return v, true
}
