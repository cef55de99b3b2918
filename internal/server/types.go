package server

import (
	"github.com/abhisek/shindan/internal/quiz"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Error codes used in ErrorResponse.Code.
const (
	CodeBadRequest   = "bad_request"
	CodeNotFound     = "not_found"
	CodeOutOfRange   = "question_out_of_range"
	CodeUnknownID    = "unknown_question"
	CodeCodeMismatch = "character_code_mismatch"
	CodeInternal     = "internal_error"
	CodeUnavailable  = "store_unavailable"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type initialResponse struct {
	Questions []quiz.Question `json:"questions"`
	Total     int             `json:"total"`
}

// NextRequest asks for the question at QuestionNumber. Answered questions
// are sent as IDs and resolved against the bank.
type NextRequest struct {
	TypeHint       string             `json:"typeHint"`
	Scores         quiz.Scores        `json:"scores"`
	AnsweredIDs    []string           `json:"answeredQuestionIds"`
	QuestionNumber int                `json:"questionNumber" binding:"required,min=1"`
	History        []quiz.AnswerEntry `json:"answerHistory"`
}

type nextResponse struct {
	Question       quiz.Question `json:"question"`
	QuestionNumber int           `json:"questionNumber"`
	Total          int           `json:"total"`
}

// ValidatePathRequest lists the IDs of a completed path in order.
type ValidatePathRequest struct {
	QuestionIDs []string `json:"questionIds" binding:"required,min=1"`
}

// SaveResultRequest stores a finished diagnosis. The character is derived
// from Scores; CharacterCode, when sent, must agree with it.
type SaveResultRequest struct {
	CharacterCode string             `json:"characterCode"`
	Scores        quiz.Scores        `json:"scores"`
	History       []quiz.AnswerEntry `json:"answerHistory" binding:"required"`
	Advice        string             `json:"aiAdvice"`
	TypeHint      string             `json:"typeHint"`
}

type saveResultResponse struct {
	ID            string `json:"resultId"`
	CharacterCode string `json:"characterCode"`
	CharacterName string `json:"characterName"`
}

// AdviceRequest asks for advice for a character and answer history.
type AdviceRequest struct {
	CharacterCode string             `json:"characterCode" binding:"required,len=4"`
	History       []quiz.AnswerEntry `json:"answerHistory"`
}
