// Package quizdata loads and validates the static question bank and
// character roster.
package quizdata

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/shindan/internal/quiz"
)

var (
	//go:embed data/questions.json
	questionsJSON []byte

	//go:embed data/characters.json
	charactersJSON []byte

	//go:embed data/questions.schema.json
	questionsSchemaJSON []byte

	//go:embed data/characters.schema.json
	charactersSchemaJSON []byte
)

// Data is the loaded configuration, read-only after Load returns.
type Data struct {
	Bank       *quiz.Bank
	Characters quiz.Characters
}

// Character looks up the character for a type code.
func (d *Data) Character(code string) (quiz.Character, bool) {
	return d.Characters.ByCode(code)
}

type characterFile struct {
	Version    string           `json:"version" validate:"required"`
	Characters []quiz.Character `json:"characterTypes" validate:"dive"`
}

// Load parses the embedded bank and roster.
func Load() (*Data, error) {
	return Parse(questionsJSON, charactersJSON)
}

// LoadFiles reads the bank and roster from disk. An empty path selects
// the embedded document.
func LoadFiles(questionsPath, charactersPath string) (*Data, error) {
	qs, cs := questionsJSON, charactersJSON
	if questionsPath != "" {
		b, err := os.ReadFile(questionsPath)
		if err != nil {
			return nil, fmt.Errorf("read questions: %w", err)
		}
		qs = b
	}
	if charactersPath != "" {
		b, err := os.ReadFile(charactersPath)
		if err != nil {
			return nil, fmt.Errorf("read characters: %w", err)
		}
		cs = b
	}
	return Parse(qs, cs)
}

// Parse decodes and validates raw bank and roster documents.
func Parse(questions, characters []byte) (*Data, error) {
	if err := validateDocument("questions", questionsSchemaJSON, questions); err != nil {
		return nil, err
	}
	if err := validateDocument("characters", charactersSchemaJSON, characters); err != nil {
		return nil, err
	}

	var bank quiz.Bank
	if err := json.Unmarshal(questions, &bank); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	var roster characterFile
	if err := json.Unmarshal(characters, &roster); err != nil {
		return nil, fmt.Errorf("decode characters: %w", err)
	}

	if err := validateBank(&bank); err != nil {
		return nil, err
	}
	if err := validateRoster(roster); err != nil {
		return nil, err
	}

	return &Data{Bank: &bank, Characters: roster.Characters}, nil
}

var (
	structValidator = sync.OnceValue(func() *validator.Validate {
		return validator.New(validator.WithRequiredStructEnabled())
	})
	schemaCache sync.Map // map[string]*jsonschema.Schema
)

// validateDocument checks raw JSON against one of the embedded schemas.
func validateDocument(name string, schemaDoc, raw []byte) error {
	sch, err := compiledSchema(name, schemaDoc)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: invalid JSON: %w", name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", name, err)
	}
	return nil
}

func compiledSchema(name string, schemaDoc []byte) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaDoc))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", name, err)
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add %s schema: %w", name, err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", name, err)
	}

	schemaCache.Store(name, sch)
	return sch, nil
}
