package quiz

// Urgency nivel de urgencia del contador para la capa de presentación
type Urgency string

const (
	UrgencyCalm     Urgency = "calm"
	UrgencyWarning  Urgency = "warning"
	UrgencyCritical Urgency = "critical"

	// WarningThreshold y CriticalThreshold solo cambian la presentación;
	// el vencimiento ocurre siempre en 0.
	WarningThreshold  = 5
	CriticalThreshold = 2
)

// UrgencyFor clasifica los segundos restantes (>5, 2-5, <=2)
func UrgencyFor(remaining int) Urgency {
	switch {
	case remaining > WarningThreshold:
		return UrgencyCalm
	case remaining > CriticalThreshold:
		return UrgencyWarning
	default:
		return UrgencyCritical
	}
}

// QuestionView pregunta tal como la ve el jugador
type QuestionView struct {
	Pregunta      string   `json:"pregunta"`
	Opciones      []string `json:"opciones"`
	Eliminated    []string `json:"eliminated"`
	CorrectOption string   `json:"correctOption,omitempty"`
}

// Snapshot estado de la ronda para dibujar la pantalla
type Snapshot struct {
	RoundID        string        `json:"roundId"`
	Category       string        `json:"category"`
	Features       Features      `json:"features"`
	Index          int           `json:"index"`
	Total          int           `json:"total"`
	Score          int           `json:"score"`
	HintsRemaining int           `json:"hintsRemaining"`
	HintUsed       bool          `json:"hintUsed"`
	TimeRemaining  int           `json:"timeRemaining"`
	Urgency        Urgency       `json:"urgency,omitempty"`
	Locked         bool          `json:"locked"`
	Finished       bool          `json:"finished"`
	Question       *QuestionView `json:"question,omitempty"`
	Results        *Results      `json:"results,omitempty"`
}

// Snapshot arma la vista actual. La respuesta correcta solo se incluye
// cuando la pregunta ya está bloqueada.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:        s.id,
		Category:       s.category,
		Features:       s.features,
		Index:          s.index,
		Total:          len(s.questions),
		Score:          s.score,
		HintsRemaining: s.hintsRemaining,
		HintUsed:       s.hintUsed,
		Locked:         s.answered,
		Finished:       s.Finished(),
	}
	if s.features.Timer {
		snap.TimeRemaining = s.timeRemaining
		snap.Urgency = UrgencyFor(s.timeRemaining)
	}
	if snap.Finished {
		results := s.Results()
		snap.Results = &results
		return snap
	}

	q, _ := s.Current()
	view := &QuestionView{
		Pregunta:   q.Pregunta,
		Opciones:   s.DisplayOptions(),
		Eliminated: s.Eliminated(),
	}
	if s.answered {
		view.CorrectOption = q.RespuestaCorrecta
	}
	snap.Question = view
	return snap
}
