package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientQuestions la categoría no alcanza para una ronda
	ErrInsufficientQuestions = errors.New("preguntas insuficientes")
	// ErrRoundOver la ronda ya terminó
	ErrRoundOver = errors.New("la ronda ya terminó")
	// ErrQuestionLocked la pregunta actual ya fue respondida o se agotó el tiempo
	ErrQuestionLocked = errors.New("la pregunta ya no acepta respuestas")
	// ErrOptionEliminated la opción fue descartada por una ayuda
	ErrOptionEliminated = errors.New("la opción fue eliminada por una ayuda")
	// ErrUnknownOption la opción no pertenece a la pregunta actual
	ErrUnknownOption = errors.New("la opción no pertenece a la pregunta")
)

// InsufficientQuestionsError detalla cuántas preguntas tiene la categoría
type InsufficientQuestionsError struct {
	Category string
	Have     int
	Need     int
}

func (e *InsufficientQuestionsError) Error() string {
	return fmt.Sprintf("la categoría %q necesita al menos %d preguntas (tiene %d)", e.Category, e.Need, e.Have)
}

// Is permite usar errors.Is(err, ErrInsufficientQuestions)
func (e *InsufficientQuestionsError) Is(target error) bool {
	return target == ErrInsufficientQuestions
}
