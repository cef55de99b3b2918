package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/shindan/internal/quiz"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// DefaultListLimit caps List when the caller passes no limit.
const DefaultListLimit = 100

// Result is a saved diagnosis.
type Result struct {
	ID            string             `json:"id"`
	CharacterCode string             `json:"characterCode"`
	CharacterName string             `json:"characterName"`
	Scores        quiz.Scores        `json:"scores"`
	History       []quiz.AnswerEntry `json:"answerHistory"`
	Advice        string             `json:"aiAdvice,omitempty"`
	TypeHint      string             `json:"typeHint,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// CharacterStat counts saved results per character code.
type CharacterStat struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ResultRepo persists diagnosis results.
type ResultRepo interface {
	// Save stores a result. An empty ID or zero CreatedAt is filled in
	// before writing, so the caller sees the stored values.
	Save(ctx context.Context, r *Result) error

	// Get returns the result with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Result, error)

	// List returns up to limit results, newest first. A limit <= 0 means
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]Result, error)

	// CharacterStats counts results per character, most common first.
	CharacterStats(ctx context.Context) ([]CharacterStat, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates token usage for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
