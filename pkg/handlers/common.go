package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/SBertone10/prog1-equipo-0X/pkg/bank"
	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/quiz"
	"github.com/SBertone10/prog1-equipo-0X/pkg/services"
	"github.com/valyala/fasthttp"
)

// respondWithJSON envía una respuesta JSON
func respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

// respondWithError envía una respuesta de error
func respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	respondWithJSON(ctx, statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

// respondWithSuccess envía una respuesta exitosa
func respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	respondWithJSON(ctx, fasthttp.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondWithGameError traduce los errores del juego y del banco a HTTP
func respondWithGameError(ctx *fasthttp.RequestCtx, err error) {
	var insufficient *quiz.InsufficientQuestionsError
	var validation *bank.ValidationError
	var write *bank.WriteError

	switch {
	case errors.As(err, &insufficient):
		respondWithError(ctx, fasthttp.StatusConflict, fmt.Sprintf(
			"La categoría %s necesita al menos %d preguntas (tiene %d)",
			insufficient.Category, insufficient.Need, insufficient.Have))
	case errors.As(err, &validation):
		respondWithError(ctx, fasthttp.StatusBadRequest, validation.Message)
	case errors.As(err, &write):
		respondWithError(ctx, fasthttp.StatusInternalServerError, "No se pudo guardar la pregunta. Intentá de nuevo.")
	case errors.Is(err, bank.ErrUnknownCategory),
		errors.Is(err, services.ErrNoActiveRound):
		respondWithError(ctx, fasthttp.StatusNotFound, capitalize(err.Error()))
	case errors.Is(err, services.ErrRoundMismatch),
		errors.Is(err, quiz.ErrRoundOver),
		errors.Is(err, quiz.ErrQuestionLocked),
		errors.Is(err, quiz.ErrOptionEliminated):
		respondWithError(ctx, fasthttp.StatusConflict, capitalize(err.Error()))
	case errors.Is(err, quiz.ErrUnknownOption):
		respondWithError(ctx, fasthttp.StatusBadRequest, capitalize(err.Error()))
	default:
		respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error interno: %v", err))
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// parseBody decodifica el cuerpo JSON del request
func parseBody(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := json.Unmarshal(ctx.PostBody(), v); err != nil {
		respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return false
	}
	return true
}
