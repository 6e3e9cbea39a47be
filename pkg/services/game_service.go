package services

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/quiz"
	"github.com/SBertone10/prog1-equipo-0X/pkg/store"
	"github.com/SBertone10/prog1-equipo-0X/pkg/websocket"
)

var (
	// ErrNoActiveRound no hay ninguna ronda en juego
	ErrNoActiveRound = errors.New("no hay una ronda activa")
	// ErrRoundMismatch el ID no corresponde a la ronda actual
	ErrRoundMismatch = errors.New("la ronda indicada no es la ronda actual")
)

const saveTimeout = 5 * time.Second

// Publisher recibe los eventos del juego
type Publisher interface {
	BroadcastMessage(msgType string, data interface{})
}

// QuestionSource entrega las preguntas de una categoría
type QuestionSource interface {
	Questions(category string) ([]models.QuestionRecord, error)
}

// GameOptions parámetros del servicio de juego
type GameOptions struct {
	Features   quiz.Features
	Scheduler  quiz.Scheduler
	GraceDelay time.Duration
	Rand       *rand.Rand
}

// GameService maneja la ronda en curso de un único jugador. Todas las
// operaciones, incluidos los ticks del temporizador, pasan por el mismo mutex.
type GameService struct {
	mu sync.Mutex

	source  QuestionSource
	results store.ResultStore
	events  Publisher

	features quiz.Features
	sched    quiz.Scheduler
	grace    time.Duration
	rng      *rand.Rand

	session       *quiz.Session
	timer         *quiz.Timer
	cancelAdvance func() bool
	advanceGen    uint64
}

// NewGameService crea el servicio. results puede ser nil si no se guardan
// resultados.
func NewGameService(source QuestionSource, results store.ResultStore, events Publisher, opts GameOptions) *GameService {
	s := &GameService{
		source:   source,
		results:  results,
		events:   events,
		features: opts.Features,
		grace:    opts.GraceDelay,
		rng:      opts.Rand,
	}
	base := opts.Scheduler
	if base == nil {
		base = quiz.RealScheduler{}
	}
	s.sched = lockedScheduler{base: base, mu: &s.mu}
	if s.grace <= 0 {
		s.grace = quiz.GraceDelay
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// lockedScheduler ejecuta cada callback con el mutex del servicio tomado
type lockedScheduler struct {
	base quiz.Scheduler
	mu   *sync.Mutex
}

func (l lockedScheduler) AfterFunc(d time.Duration, f func()) func() bool {
	return l.base.AfterFunc(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		f()
	})
}

// StartRound arranca una ronda nueva en la categoría. Si había otra en
// curso, cancela sus temporizadores y la reemplaza.
func (s *GameService) StartRound(category string) (quiz.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool, err := s.source.Questions(category)
	if err != nil {
		return quiz.Snapshot{}, err
	}
	session, err := quiz.StartWithRand(category, pool, s.features, s.rng)
	if err != nil {
		log.Printf("⚠️ No se pudo iniciar la ronda: %v", err)
		return quiz.Snapshot{}, err
	}

	if s.session != nil && !s.session.Finished() {
		log.Printf("🔄 Ronda %s reemplazada", s.session.ID())
	}
	s.stopLocked()
	s.session = session
	s.startQuestionLocked()

	snap := session.Snapshot()
	s.publish(websocket.EventRoundStarted, snap)
	log.Printf("🎮 Ronda %s iniciada en %s", session.ID(), category)
	return snap, nil
}

// Current estado de la ronda actual
func (s *GameService) Current() (quiz.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return quiz.Snapshot{}, ErrNoActiveRound
	}
	return s.session.Snapshot(), nil
}

// Answer responde la pregunta actual y programa el paso a la siguiente
func (s *GameService) Answer(roundID, option string) (models.AnswerResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.roundLocked(roundID)
	if err != nil {
		return models.AnswerResponse{}, err
	}
	index := session.Index()
	result, err := session.Answer(option)
	if err != nil {
		return models.AnswerResponse{}, err
	}

	s.stopTimerLocked()
	resp := models.AnswerResponse{
		Correct:       result.Correct,
		CorrectOption: result.CorrectOption,
		Score:         session.Score(),
	}
	s.publish(websocket.EventAnswered, map[string]interface{}{
		"roundId":       roundID,
		"index":         index,
		"option":        option,
		"correct":       resp.Correct,
		"correctOption": resp.CorrectOption,
		"score":         resp.Score,
	})
	s.scheduleAdvanceLocked(roundID, index)
	return resp, nil
}

// UseHint usa una ayuda en la pregunta actual
func (s *GameService) UseHint(roundID string) (models.HintResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.roundLocked(roundID)
	if err != nil {
		return models.HintResponse{}, err
	}
	removed := session.UseHint()
	resp := models.HintResponse{Removed: removed, HintsRemaining: session.HintsRemaining()}
	if len(removed) > 0 {
		s.publish(websocket.EventHint, map[string]interface{}{
			"roundId":        roundID,
			"index":          session.Index(),
			"removed":        removed,
			"hintsRemaining": resp.HintsRemaining,
		})
	}
	return resp, nil
}

// Advance pasa a la siguiente pregunta sin esperar la pausa automática
func (s *GameService) Advance(roundID string) (models.AdvanceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.roundLocked(roundID); err != nil {
		return models.AdvanceResponse{}, err
	}
	return models.AdvanceResponse{HasNext: s.advanceLocked()}, nil
}

// Abandon descarta la ronda actual y detiene sus temporizadores
func (s *GameService) Abandon(roundID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.roundLocked(roundID); err != nil {
		return err
	}
	s.stopLocked()
	s.session = nil
	s.publish(websocket.EventRoundAbandoned, map[string]string{"roundId": roundID})
	log.Printf("🚪 Ronda %s abandonada", roundID)
	return nil
}

// Results puntaje de la ronda, terminada o en curso
func (s *GameService) Results(roundID string) (quiz.Results, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.roundLocked(roundID)
	if err != nil {
		return quiz.Results{}, err
	}
	return session.Results(), nil
}

// Shutdown cancela cualquier tick o avance pendiente
func (s *GameService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *GameService) roundLocked(roundID string) (*quiz.Session, error) {
	if s.session == nil {
		return nil, ErrNoActiveRound
	}
	if s.session.ID() != roundID {
		return nil, ErrRoundMismatch
	}
	return s.session, nil
}

// current indica si la ronda y la pregunta siguen siendo las mismas
func (s *GameService) current(roundID string, index int) bool {
	return s.session != nil &&
		s.session.ID() == roundID &&
		s.session.Index() == index &&
		!s.session.Finished()
}

func (s *GameService) startQuestionLocked() {
	if !s.features.Timer {
		return
	}
	roundID, index := s.session.ID(), s.session.Index()
	s.timer = quiz.NewTimer(s.sched, quiz.QuestionTimeLimit,
		func(remaining int) { s.onTick(roundID, index, remaining) },
		func() { s.onExpire(roundID, index) },
	)
	s.timer.Start()
}

func (s *GameService) onTick(roundID string, index, remaining int) {
	if !s.current(roundID, index) {
		return
	}
	s.session.SetTimeRemaining(remaining)
	s.publish(websocket.EventTick, map[string]interface{}{
		"roundId":   roundID,
		"index":     index,
		"remaining": remaining,
		"urgency":   quiz.UrgencyFor(remaining),
	})
}

func (s *GameService) onExpire(roundID string, index int) {
	if !s.current(roundID, index) {
		return
	}
	correct, ok := s.session.Expire()
	if !ok {
		return
	}
	log.Printf("⏰ Tiempo agotado en la pregunta %d de la ronda %s", index+1, roundID)
	s.publish(websocket.EventExpired, map[string]interface{}{
		"roundId":       roundID,
		"index":         index,
		"correctOption": correct,
	})
	s.scheduleAdvanceLocked(roundID, index)
}

func (s *GameService) scheduleAdvanceLocked(roundID string, index int) {
	s.cancelAdvanceLocked()
	gen := s.advanceGen
	s.cancelAdvance = s.sched.AfterFunc(s.grace, func() {
		if gen != s.advanceGen || !s.current(roundID, index) {
			return
		}
		s.cancelAdvance = nil
		s.advanceLocked()
	})
}

// advanceLocked pasa de pregunta y, si era la última, cierra la ronda
func (s *GameService) advanceLocked() bool {
	s.cancelAdvanceLocked()
	s.stopTimerLocked()

	if s.session.Finished() {
		return false
	}
	if s.session.Advance() {
		s.startQuestionLocked()
		s.publish(websocket.EventQuestionChanged, s.session.Snapshot())
		return true
	}
	s.finishRoundLocked()
	return false
}

func (s *GameService) finishRoundLocked() {
	session := s.session
	results := session.Results()
	log.Printf("🏁 Ronda %s terminada: %d/%d (%.0f%%)", session.ID(), results.Score, results.Total, results.Percentage)

	s.publish(websocket.EventRoundFinished, map[string]interface{}{
		"roundId":  session.ID(),
		"category": session.Category(),
		"results":  results,
	})

	if s.results == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	err := s.results.Save(ctx, store.RoundResult{
		RoundID:    session.ID(),
		Category:   session.Category(),
		Score:      results.Score,
		Total:      results.Total,
		Percentage: results.Percentage,
		HintsUsed:  session.HintsUsed(),
		Expired:    session.ExpiredCount(),
		FinishedAt: time.Now(),
	})
	if err != nil {
		log.Printf("⚠️ Error guardando resultado de la ronda %s: %v", session.ID(), err)
	}
}

func (s *GameService) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *GameService) cancelAdvanceLocked() {
	s.advanceGen++
	if s.cancelAdvance != nil {
		s.cancelAdvance()
		s.cancelAdvance = nil
	}
}

func (s *GameService) stopLocked() {
	s.stopTimerLocked()
	s.cancelAdvanceLocked()
}

func (s *GameService) publish(msgType string, data interface{}) {
	if s.events != nil {
		s.events.BroadcastMessage(msgType, data)
	}
}
