package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	resultsTable   = "results"
	llmEventsTable = "llm_request_events"
)

var (
	resultsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "character_code", Type: field.TypeString, Size: 4},
		{Name: "character_name", Type: field.TypeString},
		{Name: "type_hint", Type: field.TypeString, Default: ""},
		{Name: "scores", Type: field.TypeJSON},
		{Name: "answer_history", Type: field.TypeJSON},
		{Name: "ai_advice", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "created_at", Type: field.TypeInt64, Comment: "unix milliseconds"},
	}
	resultsSchema = &schema.Table{
		Name:       resultsTable,
		Columns:    resultsColumns,
		PrimaryKey: []*schema.Column{resultsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "result_character_code", Columns: []*schema.Column{resultsColumns[1]}},
			{Name: "result_created_at", Columns: []*schema.Column{resultsColumns[7]}},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64, Comment: "unix milliseconds"},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsSchema = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[4]}},
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[1]}},
		},
	}

	tables = []*schema.Table{resultsSchema, llmEventsSchema}
)

// migrate creates or upgrades every table the store uses.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
