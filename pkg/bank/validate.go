package bank

import (
	"strings"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
)

// OptionCount cantidad de opciones que exige el formulario
const OptionCount = 4

// ValidateSubmission revisa los datos del formulario y arma el registro.
// Los mensajes son los que ve el usuario.
func ValidateSubmission(sub models.QuestionSubmission) (models.QuestionRecord, error) {
	pregunta := strings.TrimSpace(sub.Pregunta)
	if pregunta == "" {
		return models.QuestionRecord{}, &ValidationError{Field: "pregunta", Message: "La pregunta no puede estar vacía."}
	}

	if len(sub.Opciones) != OptionCount {
		return models.QuestionRecord{}, &ValidationError{Field: "opciones", Message: "Completá las 4 opciones."}
	}
	opciones := make([]string, len(sub.Opciones))
	seen := make(map[string]bool, len(sub.Opciones))
	for i, o := range sub.Opciones {
		o = strings.TrimSpace(o)
		if o == "" {
			return models.QuestionRecord{}, &ValidationError{Field: "opciones", Message: "Completá las 4 opciones."}
		}
		if seen[o] {
			return models.QuestionRecord{}, &ValidationError{Field: "opciones", Message: "Las opciones no pueden repetirse."}
		}
		seen[o] = true
		opciones[i] = o
	}

	if sub.Correcta < 0 || sub.Correcta >= OptionCount {
		return models.QuestionRecord{}, &ValidationError{Field: "correcta", Message: "Seleccioná la respuesta correcta."}
	}

	return models.QuestionRecord{
		Pregunta:          pregunta,
		Opciones:          opciones,
		RespuestaCorrecta: opciones[sub.Correcta],
	}, nil
}
