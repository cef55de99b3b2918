package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCode(t *testing.T) {
	tests := []struct {
		name   string
		scores Scores
		want   string
	}{
		{"all positive", Scores{1, 1, 1, 1}, "IGYS"},
		{"all zero counts as second letter", Scores{}, "STAC"},
		{"all negative", Scores{-3, -1, -2, -5}, "STAC"},
		{"mixed", Scores{ActionStyle: 4, SocialStyle: 0, Motivation: -1, Thinking: 2}, "ITAS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeCode(tt.scores))
		})
	}
}

func TestAllTypeCodes(t *testing.T) {
	codes := AllTypeCodes()
	require.Len(t, codes, 16)
	assert.Equal(t, "IGYS", codes[0])
	assert.Equal(t, "STAC", codes[15])

	seen := map[string]bool{}
	for _, c := range codes {
		assert.True(t, ValidTypeCode(c), c)
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
	assert.False(t, ValidTypeCode("INTJ"))
	assert.False(t, ValidTypeCode("IGY"))
}

func TestScoresAddDoesNotMutate(t *testing.T) {
	base := Scores{ActionStyle: 1}
	sum := base.Add(Scores{ActionStyle: 2, Thinking: -1})
	assert.Equal(t, Scores{ActionStyle: 1}, base)
	assert.Equal(t, Scores{ActionStyle: 3, Thinking: -1}, sum)
}

func TestScoresAbsentFieldsDecodeToZero(t *testing.T) {
	var s Scores
	require.NoError(t, json.Unmarshal([]byte(`{"motivation": 2}`), &s))
	assert.Equal(t, Scores{Motivation: 2}, s)
}

func TestQuestionCoverage(t *testing.T) {
	q := Question{
		ID: "q1",
		Options: []Option{
			{Text: "a", Scores: Scores{ActionStyle: 2}},
			{Text: "b", Scores: Scores{ActionStyle: -2, Thinking: 1}},
			{Text: "c", Scores: Scores{ActionStyle: 1}},
		},
	}
	assert.Equal(t, []Axis{AxisActionStyle, AxisThinking}, q.Coverage())
	assert.False(t, q.Covers(AxisSocialStyle))
}

func TestScorePatternMatches(t *testing.T) {
	pos := ScorePattern{Axis: AxisSocialStyle, Threshold: 2, Direction: DirectionPositive}
	neg := ScorePattern{Axis: AxisSocialStyle, Threshold: 2, Direction: DirectionNegative}

	assert.True(t, pos.Matches(Scores{SocialStyle: 2}))
	assert.False(t, pos.Matches(Scores{SocialStyle: 1}))
	assert.True(t, neg.Matches(Scores{SocialStyle: -2}))
	assert.False(t, neg.Matches(Scores{SocialStyle: -1}))
}

func TestConditionsGated(t *testing.T) {
	var none *Conditions
	assert.False(t, none.Gated(1))

	c := &Conditions{AfterQuestion: 4}
	assert.True(t, c.Gated(4))
	assert.False(t, c.Gated(5))
	assert.False(t, (&Conditions{}).Gated(1))
}

func TestVariantSetJSON(t *testing.T) {
	var slot Slot
	require.NoError(t, json.Unmarshal([]byte(`{
		"slotId": 1, "category": "x",
		"baseQuestion": {"id": "b", "question": "?", "options": []}
	}`), &slot))
	assert.True(t, slot.Variants.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{
		"slotId": 2, "category": "x",
		"baseQuestion": {"id": "b", "question": "?", "options": []},
		"variants": [{"id": "v1", "question": "?", "options": [], "conditions": {"afterQuestion": 3}}]
	}`), &slot))
	require.Equal(t, 1, slot.Variants.Len())
	v := slot.Variants.All()[0]
	assert.Equal(t, "v1", v.ID)
	assert.Equal(t, 3, v.Conditions.AfterQuestion)
	assert.True(t, slot.Contains("v1"))
	assert.Len(t, slot.Alternatives(), 2)

	out, err := json.Marshal(NoVariants())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(out))
}

func TestNormalizeHint(t *testing.T) {
	h, err := NormalizeHint(" enfp ")
	require.NoError(t, err)
	assert.Equal(t, "ENFP", h)

	h, err = NormalizeHint("")
	require.NoError(t, err)
	assert.Empty(t, h)

	_, err = NormalizeHint("XXXX")
	assert.Error(t, err)

	assert.Nil(t, HintLetters("ENF"))
	assert.Equal(t, []string{"E", "N", "F", "P"}, HintLetters("ENFP"))
}

func TestCharactersByCode(t *testing.T) {
	cs := Characters{{Code: "IGYS", Name: "A"}, {Code: "STAC", Name: "B"}}
	c, ok := cs.ByCode("stac")
	require.True(t, ok)
	assert.Equal(t, "B", c.Name)
	_, ok = cs.ByCode("IGYC")
	assert.False(t, ok)
}
