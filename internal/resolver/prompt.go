package resolver

import (
	"fmt"
	"strings"

	"recruitbot/internal/knowledge"
	"recruitbot/internal/models"
)

// Лимиты секций промпта.
const (
	promptBlocks      = 5
	promptCategoryFAQ = 30
	promptAllFAQ      = 50
	promptLearned     = 10
	maxAnswerWords    = 200
)

const systemPromptTemplate = `You are a manager of the Valencia agency. The agency recruits girls to work as stream models in the Halo app (chatting, live streams, private video calls). You talk to applicants in a Telegram chat.

Rules:
- Reply ONLY in %[1]s. Never switch language, even if the context below is in another language.
- Reply ONLY with a JSON object: {"answer": "...", "confidence": 0-100, "escalate": true|false, "language": "%[2]s"}.
- confidence is how sure you are that the answer is correct and complete. If you are not sure, set escalate to true.
- Never say or hint that you are an AI, a bot or a program. You are a human manager.
- Never discuss politics, religion, psychological problems, and never promise guaranteed income or exact amounts.
- Never invent links, steps, prices or procedures that are not in the provided context. If the context has no answer, set escalate to true.
- Ukraine is not a restricted country; girls from any country can work.
- Problems with joining the group or with links: set escalate to true.
- If the girl says she has no photos, encourage her to take 2-3 photos right now.
- The agency to choose during registration is ` + knowledge.AgencyName + `.
- Priority of the context: specialized knowledge, then the recent conversation, then FAQ, then training materials, then the full history, then previous answers.
- No markdown formatting. Maximum %[3]d words. Friendly tone, short sentences, emoji are fine.`

// SystemPrompt builds the persona and output contract for lang.
func SystemPrompt(lang models.Language) string {
	return fmt.Sprintf(systemPromptTemplate, languageName(lang), lang, maxAnswerWords)
}

// promptContext is everything loaded for one generation.
type promptContext struct {
	Blocks      []knowledge.Match
	CategoryFAQ []*models.KnowledgeEntry
	AllFAQ      []*models.KnowledgeEntry
	Materials   []knowledge.Excerpt
	Learned     []*models.LearnedAnswer
}

// buildUserPrompt lays out the context sections in priority order.
func buildUserPrompt(in *Input, pc promptContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "ANSWER LANGUAGE: %s (%s)\n", languageName(in.Language), in.Language)
	fmt.Fprintf(&b, "USER STATUS: %s (stage: %s)\n", in.Status, in.Category())
	if in.InGroup {
		b.WriteString("USER IS A MEMBER OF THE WORK GROUP: yes\n")
	}

	blocks := pc.Blocks
	if len(blocks) > promptBlocks {
		blocks = blocks[:promptBlocks]
	}
	if len(blocks) > 0 {
		section(&b, "SPECIALIZED KNOWLEDGE (highest priority)")
		for _, m := range blocks {
			fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Block, m.Text)
		}
	}

	if recent := in.Recent(models.HistoryRecent); len(recent) > 0 {
		section(&b, "RECENT CONVERSATION")
		writeHistory(&b, recent)
	}

	if len(pc.CategoryFAQ) > 0 {
		section(&b, fmt.Sprintf("FAQ FOR STAGE %q", in.Category()))
		writeFAQ(&b, pc.CategoryFAQ, promptCategoryFAQ)
	}
	if len(pc.AllFAQ) > 0 {
		section(&b, "ALL FAQ")
		writeFAQ(&b, pc.AllFAQ, promptAllFAQ)
	}

	if len(pc.Materials) > 0 {
		section(&b, "TRAINING MATERIALS")
		for _, m := range pc.Materials {
			fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Kind, m.Text)
		}
	}

	if full := in.Recent(models.HistoryFull); len(full) > len(in.Recent(models.HistoryRecent)) {
		section(&b, "FULL HISTORY")
		writeHistory(&b, full)
	}

	if len(pc.Learned) > 0 {
		section(&b, "PREVIOUS ANSWERS (hints only, may be wrong)")
		for i, la := range pc.Learned {
			if i >= promptLearned {
				break
			}
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", la.Question, la.Answer)
		}
	}

	section(&b, "QUESTION")
	b.WriteString(in.Text)
	b.WriteString("\n")
	return b.String()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n=== %s ===\n", title)
}

func writeHistory(b *strings.Builder, msgs []*models.Message) {
	for _, m := range msgs {
		fmt.Fprintf(b, "%s: %s\n", m.Role, m.Content)
	}
}

func writeFAQ(b *strings.Builder, entries []*models.KnowledgeEntry, limit int) {
	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Fprintf(b, "Q: %s\nA: %s\n", e.Question, e.Answer)
	}
}
