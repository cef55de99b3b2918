package advice

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a career coach known for blunt but caring advice. You read a person's personality quiz answers and point out what they cannot see themselves.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Type code: %s\n", in.Character.Code)
	fmt.Fprintf(&b, "Type name: %s\n", in.Character.Name)
	if in.Character.Subtitle != "" {
		fmt.Fprintf(&b, "Tagline: %s\n", in.Character.Subtitle)
	}

	b.WriteString("\nAnswers:\n")
	if len(in.History) == 0 {
		b.WriteString("None recorded\n")
	}
	for i, a := range in.History {
		fmt.Fprintf(&b, "Q%d: %s\nAnswer: %s\n\n", i+1, a.Question, a.SelectedAnswer)
	}

	b.WriteString(`
Instructions:
1. Name ONE hidden talent that the answer pattern reveals.
2. Give ONE concrete piece of advice they can act on tomorrow without quitting their job.
3. Be sharp but warm. Plain declarative sentences, no emoji.
4. Keep the two fields under 300 characters together.`)

	return b.String()
}
