package models

// RoundStartRequest request para iniciar una ronda
type RoundStartRequest struct {
	Category string `json:"category"`
}

// AnswerRequest request para responder la pregunta actual
type AnswerRequest struct {
	Option string `json:"option"`
}

// QuestionSubmission datos del formulario para agregar una pregunta
type QuestionSubmission struct {
	Pregunta string   `json:"pregunta"`
	Opciones []string `json:"opciones"`
	Correcta int      `json:"correcta"` // índice 0-based dentro de opciones
}

// AnswerResponse respuesta al contestar una pregunta
type AnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectOption string `json:"correctOption"`
	Score         int    `json:"score"`
}

// HintResponse opciones eliminadas por una ayuda
type HintResponse struct {
	Removed        []string `json:"removed"`
	HintsRemaining int      `json:"hintsRemaining"`
}

// AdvanceResponse resultado de avanzar de pregunta
type AdvanceResponse struct {
	HasNext bool `json:"hasNext"`
}
