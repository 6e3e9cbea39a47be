package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/SBertone10/prog1-equipo-0X/pkg/bank"
	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/store"
	"github.com/valyala/fasthttp"
)

// CategoryHandler maneja las peticiones HTTP del banco de preguntas
type CategoryHandler struct {
	bank    *bank.Bank
	results store.ResultStore
}

// NewCategoryHandler crea una nueva instancia del handler
func NewCategoryHandler(b *bank.Bank, results store.ResultStore) *CategoryHandler {
	return &CategoryHandler{
		bank:    b,
		results: results,
	}
}

// HealthCheck maneja GET /api/health
func (h *CategoryHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	if err := h.bank.HealthCheck(); err != nil {
		respondWithError(ctx, fasthttp.StatusServiceUnavailable, "Banco de preguntas no disponible: "+err.Error())
		return
	}

	resultsStatus := "disabled"
	if h.results != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.results.Ping(pingCtx); err != nil {
			respondWithError(ctx, fasthttp.StatusServiceUnavailable, "Resultados no disponibles: "+err.Error())
			return
		}
		resultsStatus = "connected"
	}

	respondWithSuccess(ctx, map[string]interface{}{
		"status":  "healthy",
		"bank":    "ok",
		"results": resultsStatus,
	}, "Servicio funcionando correctamente")
}

// GetCategories maneja GET /api/categories
func (h *CategoryHandler) GetCategories(ctx *fasthttp.RequestCtx) {
	categories := h.bank.Categories()
	respondWithSuccess(ctx, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	}, "Categorías obtenidas exitosamente")
}

// ReloadCategories maneja POST /api/categories/reload
func (h *CategoryHandler) ReloadCategories(ctx *fasthttp.RequestCtx) {
	h.bank.Reload()
	respondWithSuccess(ctx, map[string]interface{}{
		"categories": h.bank.Categories(),
	}, "Preguntas recargadas exitosamente")
}

// AddQuestion maneja POST /api/categories/{name}/questions
func (h *CategoryHandler) AddQuestion(ctx *fasthttp.RequestCtx) {
	category := ctx.UserValue("name").(string)

	var sub models.QuestionSubmission
	if !parseBody(ctx, &sub) {
		return
	}

	record, err := h.bank.Submit(category, sub)
	if err != nil {
		log.Printf("⚠️ Pregunta rechazada para '%s': %v", category, err)
		respondWithGameError(ctx, err)
		return
	}

	respondWithSuccess(ctx, record, "¡Pregunta guardada con éxito!")
}

// ImportQuestions maneja POST /api/categories/{name}/import. Acepta el .xlsx
// como cuerpo del request o como campo "file" de un formulario multipart.
func (h *CategoryHandler) ImportQuestions(ctx *fasthttp.RequestCtx) {
	category := ctx.UserValue("name").(string)

	var reader io.Reader = bytes.NewReader(ctx.PostBody())
	if fh, err := ctx.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			respondWithError(ctx, fasthttp.StatusBadRequest, "No se pudo leer el archivo")
			return
		}
		defer f.Close()
		reader = f
	} else if len(ctx.PostBody()) == 0 {
		respondWithError(ctx, fasthttp.StatusBadRequest, "Falta la planilla")
		return
	}

	report, err := h.bank.ImportSpreadsheet(category, reader)
	if err != nil {
		var validation *bank.ValidationError
		var write *bank.WriteError
		if errors.As(err, &validation) || errors.As(err, &write) {
			respondWithGameError(ctx, err)
			return
		}
		respondWithError(ctx, fasthttp.StatusBadRequest, "Planilla inválida: "+err.Error())
		return
	}

	log.Printf("📥 Importación en '%s': %d agregadas, %d rechazadas", category, report.Added, len(report.Rejected))
	respondWithSuccess(ctx, report, "Importación terminada")
}
