package handlers

import (
	"strings"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/services"
	"github.com/valyala/fasthttp"
)

// RoundHandler maneja las peticiones HTTP de la ronda en curso
type RoundHandler struct {
	game *services.GameService
}

// NewRoundHandler crea una nueva instancia del handler
func NewRoundHandler(game *services.GameService) *RoundHandler {
	return &RoundHandler{game: game}
}

// StartRound maneja POST /api/rounds
func (h *RoundHandler) StartRound(ctx *fasthttp.RequestCtx) {
	var req models.RoundStartRequest
	if !parseBody(ctx, &req) {
		return
	}
	req.Category = strings.TrimSpace(req.Category)
	if req.Category == "" {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Elegí una categoría")
		return
	}

	snap, err := h.game.StartRound(req.Category)
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}
	respondWithSuccess(ctx, snap, "Ronda iniciada")
}

// GetCurrentRound maneja GET /api/rounds/current
func (h *RoundHandler) GetCurrentRound(ctx *fasthttp.RequestCtx) {
	snap, err := h.game.Current()
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}
	respondWithSuccess(ctx, snap, "Ronda obtenida exitosamente")
}

// SubmitAnswer maneja POST /api/rounds/{id}/answer
func (h *RoundHandler) SubmitAnswer(ctx *fasthttp.RequestCtx) {
	roundID := ctx.UserValue("id").(string)

	var req models.AnswerRequest
	if !parseBody(ctx, &req) {
		return
	}

	resp, err := h.game.Answer(roundID, req.Option)
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}

	message := "Respuesta incorrecta"
	if resp.Correct {
		message = "¡Respuesta correcta!"
	}
	respondWithSuccess(ctx, resp, message)
}

// UseHint maneja POST /api/rounds/{id}/hint
func (h *RoundHandler) UseHint(ctx *fasthttp.RequestCtx) {
	roundID := ctx.UserValue("id").(string)

	resp, err := h.game.UseHint(roundID)
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}

	message := "Ayuda usada"
	if len(resp.Removed) == 0 {
		message = "No hay ayuda disponible para esta pregunta"
	}
	respondWithSuccess(ctx, resp, message)
}

// Advance maneja POST /api/rounds/{id}/advance
func (h *RoundHandler) Advance(ctx *fasthttp.RequestCtx) {
	roundID := ctx.UserValue("id").(string)

	resp, err := h.game.Advance(roundID)
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}

	message := "Siguiente pregunta"
	if !resp.HasNext {
		message = "Ronda terminada"
	}
	respondWithSuccess(ctx, resp, message)
}

// Abandon maneja POST /api/rounds/{id}/abandon
func (h *RoundHandler) Abandon(ctx *fasthttp.RequestCtx) {
	roundID := ctx.UserValue("id").(string)

	if err := h.game.Abandon(roundID); err != nil {
		respondWithGameError(ctx, err)
		return
	}
	respondWithSuccess(ctx, nil, "Ronda abandonada")
}

// GetResults maneja GET /api/rounds/{id}/results
func (h *RoundHandler) GetResults(ctx *fasthttp.RequestCtx) {
	roundID := ctx.UserValue("id").(string)

	results, err := h.game.Results(roundID)
	if err != nil {
		respondWithGameError(ctx, err)
		return
	}
	respondWithSuccess(ctx, results, "Resultados obtenidos exitosamente")
}
