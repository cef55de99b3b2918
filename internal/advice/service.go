// Package advice writes personalised advice for a finished quiz, using an
// LLM when one is configured and the character's own text otherwise.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/llm"
	"github.com/abhisek/shindan/internal/quiz"
)

// Purpose labels advice calls in the LLM event log.
const Purpose = "advice"

// Source says where a piece of advice came from.
type Source string

const (
	SourceLLM    Source = "llm"
	SourceStatic Source = "static"
)

// Input is what advice is generated from.
type Input struct {
	Character quiz.Character
	History   []quiz.AnswerEntry
}

// Advice is the generated result.
type Advice struct {
	HiddenTalent string `json:"hiddenTalent"`
	Advice       string `json:"advice"`
	Source       Source `json:"source"`
}

// Text joins the two parts for storage and display.
func (a Advice) Text() string {
	return strings.TrimSpace(a.HiddenTalent + " " + a.Advice)
}

// Config holds advice generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the advice generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 500, Temperature: 0.7}
}

// Service generates advice. A nil provider always yields static advice.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService creates an advice service.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Generate returns advice for in. LLM failures are logged and answered
// with the static fallback, so the returned error is only ever non-nil
// when ctx is done.
func (s *Service) Generate(ctx context.Context, in Input) (Advice, error) {
	if s.provider == nil {
		return Static(in.Character), nil
	}

	a, err := s.generate(ctx, in)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Advice{}, ctxErr
		}
		s.log.Warn("advice generation failed, using static advice",
			zap.String("code", in.Character.Code), zap.Error(err))
		return Static(in.Character), nil
	}
	return a, nil
}

type adviceOutput struct {
	HiddenTalent string `json:"hiddenTalent"`
	Advice       string `json:"advice"`
}

func (s *Service) generate(ctx context.Context, in Input) (Advice, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in)}},
		Schema:      Schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Advice{}, fmt.Errorf("advice generation: %w", err)
	}

	var out adviceOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Advice{}, fmt.Errorf("parse advice response: %w", err)
	}
	return Advice{
		HiddenTalent: out.HiddenTalent,
		Advice:       out.Advice,
		Source:       SourceLLM,
	}, nil
}

// Static builds advice from the character's own descriptions.
func Static(c quiz.Character) Advice {
	return Advice{
		HiddenTalent: c.HiddenFace,
		Advice:       c.Advice,
		Source:       SourceStatic,
	}
}
