package handlers

import (
	"fmt"
	"strconv"

	"github.com/SBertone10/prog1-equipo-0X/pkg/store"
	"github.com/valyala/fasthttp"
)

// ResultHandler maneja el historial de rondas terminadas
type ResultHandler struct {
	results store.ResultStore
}

// NewResultHandler crea una nueva instancia del handler
func NewResultHandler(results store.ResultStore) *ResultHandler {
	return &ResultHandler{results: results}
}

// GetHistory maneja GET /api/results?category=&limit=
func (h *ResultHandler) GetHistory(ctx *fasthttp.RequestCtx) {
	category := string(ctx.QueryArgs().Peek("category"))

	limit := store.DefaultHistoryLimit
	if limitStr := string(ctx.QueryArgs().Peek("limit")); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			respondWithError(ctx, fasthttp.StatusBadRequest, "El parámetro 'limit' debe ser un número positivo")
			return
		}
		limit = n
	}

	results, err := h.results.History(ctx, category, limit)
	if err != nil {
		respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error obteniendo historial: %v", err))
		return
	}

	respondWithSuccess(ctx, map[string]interface{}{
		"results": results,
		"count":   len(results),
	}, "Historial obtenido exitosamente")
}

// GetBest maneja GET /api/results/best
func (h *ResultHandler) GetBest(ctx *fasthttp.RequestCtx) {
	best, err := h.results.Best(ctx)
	if err != nil {
		respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error obteniendo mejores resultados: %v", err))
		return
	}

	respondWithSuccess(ctx, map[string]interface{}{
		"results": best,
		"count":   len(best),
	}, "Mejores resultados obtenidos exitosamente")
}
