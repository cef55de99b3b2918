package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// sqlResultRepo implements ResultRepo on the SQLite results table.
type sqlResultRepo struct {
	db *sql.DB
}

var resultColumnNames = []string{
	"id", "character_code", "character_name", "type_hint",
	"scores", "answer_history", "ai_advice", "created_at",
}

// prepare fills the generated fields of r.
func prepare(r *Result) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC().Truncate(time.Millisecond)
}

func (r *sqlResultRepo) Save(ctx context.Context, res *Result) error {
	prepare(res)

	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	history, err := json.Marshal(res.History)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(resultsTable).
		Columns(resultColumnNames...).
		Values(res.ID, res.CharacterCode, res.CharacterName, res.TypeHint,
			string(scores), string(history), res.Advice, res.CreatedAt.UnixMilli()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (r *sqlResultRepo) Get(ctx context.Context, id string) (*Result, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(resultColumnNames...).
		From(b.Table(resultsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query result: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query result: %w", err)
		}
		return nil, ErrNotFound
	}
	res, err := scanResult(rows)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *sqlResultRepo) List(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select(resultColumnNames...).
		From(b.Table(resultsTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("rowid")).
		Limit(limit).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *sqlResultRepo) CharacterStats(ctx context.Context) ([]CharacterStat, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("character_code", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(resultsTable)).
		GroupBy("character_code").
		OrderBy(entsql.Desc("n"), "character_code").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("character stats: %w", err)
	}
	defer rows.Close()

	var out []CharacterStat
	for rows.Next() {
		var s CharacterStat
		if err := rows.Scan(&s.Code, &s.Count); err != nil {
			return nil, fmt.Errorf("scan character stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanResult(rows *sql.Rows) (Result, error) {
	var (
		res             Result
		scores, history []byte
		createdAtMillis int64
	)
	if err := rows.Scan(&res.ID, &res.CharacterCode, &res.CharacterName, &res.TypeHint,
		&scores, &history, &res.Advice, &createdAtMillis); err != nil {
		return Result{}, fmt.Errorf("scan result: %w", err)
	}
	if err := json.Unmarshal(scores, &res.Scores); err != nil {
		return Result{}, fmt.Errorf("decode scores for %s: %w", res.ID, err)
	}
	if err := json.Unmarshal(history, &res.History); err != nil {
		return Result{}, fmt.Errorf("decode history for %s: %w", res.ID, err)
	}
	res.CreatedAt = time.UnixMilli(createdAtMillis).UTC()
	return res, nil
}
