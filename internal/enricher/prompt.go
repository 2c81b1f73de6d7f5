package enricher

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

const termShape = `Each object must have exactly these fields:
  "word": the term in its dictionary form
  "definition": a plain-English definition of one or two sentences
  "translations": an object mapping every language code listed above to the term translated into that language`

// buildCandidatePrompt asks for glossary entries for the candidate words
// that are genuine Australian-citizenship terminology.
func buildCandidatePrompt(words, langs []string) string {
	var sb strings.Builder

	sb.WriteString("You are compiling a glossary for people preparing for the Australian citizenship test.\n\n")
	sb.WriteString("From the candidate words below keep only terms specific to Australian government, law, ")
	sb.WriteString("history, democratic values or citizenship. Skip everyday vocabulary.\n\n")
	writeLanguages(&sb, langs)

	sb.WriteString("CANDIDATE WORDS:\n")
	for _, w := range words {
		fmt.Fprintf(&sb, "- %s\n", w)
	}
	sb.WriteString("\n")

	writeInstructions(&sb)
	return sb.String()
}

// buildQuestionPrompt asks for glossary entries for the terminology used in
// a batch of quiz questions.
func buildQuestionPrompt(questions []domain.Question, langs []string) string {
	var sb strings.Builder

	sb.WriteString("You are compiling a glossary for people preparing for the Australian citizenship test.\n\n")
	sb.WriteString("Read the quiz questions below and pick out the civic, legal and historical terms a learner ")
	sb.WriteString("would need explained to answer them.\n\n")
	writeLanguages(&sb, langs)

	sb.WriteString("QUESTIONS:\n---\n")
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.TrimSpace(q.Text))
		for _, opt := range q.Options {
			fmt.Fprintf(&sb, "   - %s\n", strings.TrimSpace(opt))
		}
	}
	sb.WriteString("---\n\n")

	writeInstructions(&sb)
	return sb.String()
}

func writeLanguages(sb *strings.Builder, langs []string) {
	if len(langs) == 0 {
		sb.WriteString("LANGUAGE CODES: none (return an empty translations object)\n\n")
		return
	}
	fmt.Fprintf(sb, "LANGUAGE CODES: %s\n\n", strings.Join(langs, ", "))
}

func writeInstructions(sb *strings.Builder) {
	sb.WriteString("Respond with a JSON array of objects and nothing else. ")
	sb.WriteString(termShape)
	sb.WriteString("\nReturn [] when no term qualifies.")
}
