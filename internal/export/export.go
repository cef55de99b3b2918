// Package export writes saved results as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/shindan/internal/store"
)

// Sheet names in the workbook.
const (
	ResultsSheet = "Results"
	AnswersSheet = "Answers"
)

var resultHeaders = []string{
	"Result ID", "Created At", "Code", "Character", "Type Hint",
	"Action Style", "Social Style", "Motivation", "Thinking", "Advice",
}

var answerHeaders = []string{
	"Result ID", "#", "Question ID", "Question", "Answer",
	"Action Style", "Social Style", "Motivation", "Thinking",
}

// WriteResults writes one row per result to the Results sheet and one row
// per answer to the Answers sheet.
func WriteResults(w io.Writer, results []store.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AnswersSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", AnswersSheet, err)
	}

	if err := writeRow(f, ResultsSheet, 1, toRow(resultHeaders)); err != nil {
		return err
	}
	if err := writeRow(f, AnswersSheet, 1, toRow(answerHeaders)); err != nil {
		return err
	}

	answerRow := 2
	for i, r := range results {
		row := []any{
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.CharacterCode,
			r.CharacterName,
			r.TypeHint,
			r.Scores.ActionStyle,
			r.Scores.SocialStyle,
			r.Scores.Motivation,
			r.Scores.Thinking,
			r.Advice,
		}
		if err := writeRow(f, ResultsSheet, i+2, row); err != nil {
			return err
		}

		for n, a := range r.History {
			row := []any{
				r.ID, n + 1, a.QuestionID, a.Question, a.SelectedAnswer,
				a.Scores.ActionStyle, a.Scores.SocialStyle, a.Scores.Motivation, a.Scores.Thinking,
			}
			if err := writeRow(f, AnswersSheet, answerRow, row); err != nil {
				return err
			}
			answerRow++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toRow(headers []string) []any {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return row
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
