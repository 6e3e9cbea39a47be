package handlers

import (
	"log"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/valyala/fasthttp"
)

const qrSize = 256

// ShareHandler genera el código QR para abrir el juego desde otro dispositivo
type ShareHandler struct {
	url string
}

// NewShareHandler crea una nueva instancia del handler
func NewShareHandler(url string) *ShareHandler {
	return &ShareHandler{url: url}
}

// GetShareQR maneja GET /api/share.png
func (h *ShareHandler) GetShareQR(ctx *fasthttp.RequestCtx) {
	png, err := qrcode.Encode(h.url, qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("❌ Error generando QR: %v", err)
		respondWithError(ctx, fasthttp.StatusInternalServerError, "No se pudo generar el código QR")
		return
	}

	ctx.SetContentType("image/png")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(png)
}
