package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/store"
)

type purposeKey struct{}

// WithPurpose labels calls made with ctx in the audit log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

type audited struct {
	Provider
	events store.EventRepo
	log    *zap.Logger
}

// WithAudit wraps p so every call, successful or not, is appended to
// events. A failed append is logged and otherwise ignored.
func WithAudit(p Provider, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &audited{Provider: p, events: events, log: log}
}

func (a *audited) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := a.Provider.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    a.Name(),
		Model:       a.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		var e *Error
		if errors.As(err, &e) && len(e.Content) > 0 {
			ev.ResponseBody = string(e.Content)
		}
	}

	a.log.Debug("llm call",
		zap.String("purpose", ev.Purpose),
		zap.String("model", ev.Model),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
		zap.Error(err),
	)
	if aerr := a.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); aerr != nil {
		a.log.Warn("record llm event", zap.Error(aerr))
	}
	return resp, err
}

// transcript renders req as readable text for the audit log.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
