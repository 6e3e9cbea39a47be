package quiz

import (
	"math/rand"
	"time"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/google/uuid"
)

const (
	// RoundSize cantidad de preguntas por ronda
	RoundSize = 10
	// MaxHints ayudas disponibles por ronda
	MaxHints = 2
	// QuestionTimeLimit segundos para responder cada pregunta
	QuestionTimeLimit = 15
	// GraceDelay pausa antes de pasar a la siguiente pregunta
	GraceDelay = 2 * time.Second
	// hintRemovals opciones incorrectas que elimina una ayuda
	hintRemovals = 2
)

// Features activa las variantes del juego
type Features struct {
	Timer bool `json:"timer"`
	Hints bool `json:"hints"`
}

// AllFeatures variante completa: temporizador y ayudas
func AllFeatures() Features {
	return Features{Timer: true, Hints: true}
}

// AnswerResult resultado de responder la pregunta actual
type AnswerResult struct {
	Correct       bool
	CorrectOption string
}

// Results puntaje final de la ronda
type Results struct {
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Session estado de una ronda. No es seguro para uso concurrente.
type Session struct {
	id       string
	category string
	features Features
	rng      *rand.Rand

	questions []models.QuestionRecord
	index     int
	score     int

	hintsRemaining int
	hintUsed       bool
	eliminated     map[string]bool
	timeRemaining  int
	answered       bool
	display        []string

	hintsUsedTotal int
	expiredCount   int
}

// Start crea una ronda nueva con preguntas al azar de la categoría
func Start(category string, pool []models.QuestionRecord, features Features) (*Session, error) {
	return StartWithRand(category, pool, features, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// StartWithRand igual que Start pero con una fuente aleatoria dada
func StartWithRand(category string, pool []models.QuestionRecord, features Features, rng *rand.Rand) (*Session, error) {
	if len(pool) < RoundSize {
		return nil, &InsufficientQuestionsError{Category: category, Have: len(pool), Need: RoundSize}
	}

	shuffled := make([]models.QuestionRecord, len(pool))
	for i, q := range pool {
		shuffled[i] = q.Clone()
	}
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	s := &Session{
		id:             uuid.New().String(),
		category:       category,
		features:       features,
		rng:            rng,
		questions:      shuffled[:RoundSize],
		hintsRemaining: MaxHints,
		timeRemaining:  QuestionTimeLimit,
		eliminated:     make(map[string]bool),
	}
	if !features.Hints {
		s.hintsRemaining = 0
	}
	s.shuffleDisplay()
	return s, nil
}

// ID identificador único de la ronda
func (s *Session) ID() string { return s.id }

// Category nombre de la categoría elegida
func (s *Session) Category() string { return s.category }

// Features variante con la que se creó la ronda
func (s *Session) Features() Features { return s.features }

// Index índice de la pregunta actual; igual a Total() al terminar
func (s *Session) Index() int { return s.index }

// Total cantidad de preguntas de la ronda
func (s *Session) Total() int { return len(s.questions) }

// Score respuestas correctas hasta ahora
func (s *Session) Score() int { return s.score }

// HintsRemaining ayudas que quedan
func (s *Session) HintsRemaining() int { return s.hintsRemaining }

// HintUsedThisQuestion indica si ya se usó una ayuda en la pregunta actual
func (s *Session) HintUsedThisQuestion() bool { return s.hintUsed }

// TimeRemaining segundos que quedan para la pregunta actual
func (s *Session) TimeRemaining() int { return s.timeRemaining }

// Locked indica si la pregunta actual ya no acepta respuestas
func (s *Session) Locked() bool { return s.answered }

// Finished indica si la ronda terminó
func (s *Session) Finished() bool { return s.index >= len(s.questions) }

// HintsUsed ayudas usadas en toda la ronda
func (s *Session) HintsUsed() int { return s.hintsUsedTotal }

// ExpiredCount preguntas perdidas por tiempo
func (s *Session) ExpiredCount() int { return s.expiredCount }

// Questions copia de las preguntas de la ronda en orden de presentación
func (s *Session) Questions() []models.QuestionRecord {
	out := make([]models.QuestionRecord, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}

// Current devuelve la pregunta actual, o false si la ronda terminó
func (s *Session) Current() (models.QuestionRecord, bool) {
	if s.Finished() {
		return models.QuestionRecord{}, false
	}
	return s.questions[s.index], true
}

// Eliminated opciones descartadas por la ayuda en la pregunta actual
func (s *Session) Eliminated() []string {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(s.eliminated))
	for _, o := range q.Opciones {
		if s.eliminated[o] {
			out = append(out, o)
		}
	}
	return out
}

// DisplayOptions opciones de la pregunta actual en el orden en que se muestran
func (s *Session) DisplayOptions() []string {
	return append([]string(nil), s.display...)
}

// Answer compara la opción elegida con la respuesta correcta. No avanza.
func (s *Session) Answer(selected string) (AnswerResult, error) {
	q, ok := s.Current()
	if !ok {
		return AnswerResult{}, ErrRoundOver
	}
	if s.answered {
		return AnswerResult{}, ErrQuestionLocked
	}
	if !q.HasOption(selected) {
		return AnswerResult{}, ErrUnknownOption
	}
	if s.eliminated[selected] {
		return AnswerResult{}, ErrOptionEliminated
	}

	s.answered = true
	correct := q.IsCorrect(selected)
	if correct {
		s.score++
	}
	return AnswerResult{Correct: correct, CorrectOption: q.RespuestaCorrecta}, nil
}

// Expire bloquea la pregunta actual porque se agotó el tiempo.
// Devuelve la respuesta correcta para revelarla.
func (s *Session) Expire() (string, bool) {
	q, ok := s.Current()
	if !ok || s.answered {
		return "", false
	}
	s.answered = true
	s.timeRemaining = 0
	s.expiredCount++
	return q.RespuestaCorrecta, true
}

// SetTimeRemaining refleja el valor del temporizador
func (s *Session) SetTimeRemaining(seconds int) {
	switch {
	case seconds < 0:
		seconds = 0
	case seconds > QuestionTimeLimit:
		seconds = QuestionTimeLimit
	}
	s.timeRemaining = seconds
}

// Advance pasa a la siguiente pregunta. Devuelve si queda alguna.
func (s *Session) Advance() bool {
	if s.Finished() {
		return false
	}
	s.index++
	s.timeRemaining = QuestionTimeLimit
	s.hintUsed = false
	s.answered = false
	s.eliminated = make(map[string]bool)
	s.shuffleDisplay()
	return !s.Finished()
}

// UseHint elimina hasta dos opciones incorrectas de la pregunta actual.
// Si no corresponde, no hace nada y devuelve una lista vacía.
func (s *Session) UseHint() []string {
	removed := []string{}
	q, ok := s.Current()
	if !ok || !s.features.Hints || s.hintsRemaining <= 0 || s.hintUsed || s.answered {
		return removed
	}

	s.hintsRemaining--
	s.hintsUsedTotal++
	s.hintUsed = true

	var candidates []string
	for _, o := range q.Opciones {
		if !q.IsCorrect(o) && !s.eliminated[o] {
			candidates = append(candidates, o)
		}
	}
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > hintRemovals {
		candidates = candidates[:hintRemovals]
	}
	for _, o := range candidates {
		s.eliminated[o] = true
		removed = append(removed, o)
	}
	return removed
}

// Results puntaje y porcentaje de la ronda
func (s *Session) Results() Results {
	total := len(s.questions)
	r := Results{Score: s.score, Total: total}
	if total > 0 {
		r.Percentage = float64(s.score) / float64(total) * 100
	}
	return r
}

func (s *Session) shuffleDisplay() {
	q, ok := s.Current()
	if !ok {
		s.display = nil
		return
	}
	s.display = append([]string(nil), q.Opciones...)
	s.rng.Shuffle(len(s.display), func(i, j int) {
		s.display[i], s.display[j] = s.display[j], s.display[i]
	})
}
