package models

import (
	"errors"
	"strings"
)

// ErrUnanswerable indica que la respuesta correcta no figura entre las opciones
var ErrUnanswerable = errors.New("la respuesta correcta no figura entre las opciones")

// QuestionRecord estructura de una pregunta tal como se guarda en el banco
type QuestionRecord struct {
	Pregunta          string   `json:"pregunta"`
	Opciones          []string `json:"opciones"`
	RespuestaCorrecta string   `json:"respuestaCorrecta"`
}

// HasOption indica si el texto coincide exactamente con alguna opción
func (q QuestionRecord) HasOption(option string) bool {
	for _, o := range q.Opciones {
		if o == option {
			return true
		}
	}
	return false
}

// IsCorrect compara por texto, nunca por posición
func (q QuestionRecord) IsCorrect(option string) bool {
	return option == q.RespuestaCorrecta
}

// Check verifica que la pregunta se pueda jugar
func (q QuestionRecord) Check() error {
	if strings.TrimSpace(q.Pregunta) == "" {
		return errors.New("la pregunta está vacía")
	}
	if len(q.Opciones) < 2 {
		return errors.New("la pregunta necesita al menos dos opciones")
	}
	if !q.HasOption(q.RespuestaCorrecta) {
		return ErrUnanswerable
	}
	return nil
}

// Clone devuelve una copia que no comparte el slice de opciones
func (q QuestionRecord) Clone() QuestionRecord {
	out := q
	out.Opciones = append([]string(nil), q.Opciones...)
	return out
}

// CategoryInfo resumen de una categoría para la capa de presentación
type CategoryInfo struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	File     string `json:"file"`
	Count    int    `json:"count"`
	Playable bool   `json:"playable"`
}

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
