package prompt

import (
	"fmt"
	"strings"
)

// AnswerBuilder assembles the question-answering prompt: retrieved document
// context, the lecturer persona, response guidelines, the student's question
// and the conversation so far.
type AnswerBuilder struct {
	contextChunks []string
	question      string
	history       string
}

func NewAnswerBuilder(contextChunks []string, question, history string) *AnswerBuilder {
	return &AnswerBuilder{
		contextChunks: contextChunks,
		question:      question,
		history:       history,
	}
}

func (b *AnswerBuilder) Build() string {
	var prompt strings.Builder

	b.writeDocumentContext(&prompt)
	b.writeIdentity(&prompt)
	b.writeInstructions(&prompt)
	b.writeQuestion(&prompt)
	b.writeHistory(&prompt)

	return prompt.String()
}

func (b *AnswerBuilder) writeDocumentContext(prompt *strings.Builder) {
	prompt.WriteString("<document_context>\n")
	for i, chunk := range b.contextChunks {
		fmt.Fprintf(prompt, "[Excerpt %d]\n%s\n\n", i+1, chunk)
	}
	prompt.WriteString("</document_context>\n\n")
}

func (b *AnswerBuilder) writeIdentity(prompt *strings.Builder) {
	prompt.WriteString("<identity>\n")
	prompt.WriteString("You are a lecturer assistant that can answer questions about the provided document context.\n")
	prompt.WriteString("You are currently in a conversation with a student.\n")
	prompt.WriteString("</identity>\n\n")
}

func (b *AnswerBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("<context>\n")
	prompt.WriteString("Based on the provided document context and the chat history, please answer the student's question comprehensively and accurately.\n\n")
	prompt.WriteString("Instructions:\n")
	prompt.WriteString("- Use mainly information from the provided context\n")
	prompt.WriteString("- If the answer is not in the context, say that you don't have enough information to answer the question.\n")
	prompt.WriteString("- Provide specific examples or quotes when relevant\n")
	prompt.WriteString("- Be thorough but concise\n")
	prompt.WriteString("</context>\n\n")
	prompt.WriteString("<personality>\n")
	prompt.WriteString("- Be friendly and engaging\n")
	prompt.WriteString("- Be helpful and informative\n")
	prompt.WriteString("- Be concise and to the point\n")
	prompt.WriteString("</personality>\n\n")
}

func (b *AnswerBuilder) writeQuestion(prompt *strings.Builder) {
	prompt.WriteString("<question>\n")
	prompt.WriteString(b.question)
	prompt.WriteString("\n</question>\n\n")
}

func (b *AnswerBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("<chat_history>\n")
	prompt.WriteString(b.history)
	prompt.WriteString("\n</chat_history>\n")
}

// FlashcardPrompt asks for count study flashcards over the sampled content,
// returned as a JSON object with a "flashcards" array.
func FlashcardPrompt(count int, content string) string {
	var prompt strings.Builder

	fmt.Fprintf(&prompt, "Based on the following academic content, create %d flashcards for studying.\n", count)
	prompt.WriteString("Each flashcard should have a \"question\" and \"answer\".\n")
	prompt.WriteString("Focus on key concepts, definitions, and important facts.\n")
	prompt.WriteString("Vary the question types (definitions, explanations, applications).\n\n")
	prompt.WriteString("Return as JSON with a \"flashcards\" array containing objects with \"question\" and \"answer\" fields.\n\n")
	prompt.WriteString("Content: ")
	prompt.WriteString(content)

	return prompt.String()
}

// AnalysisPrompt is the system instruction for the upload-time document
// analysis: summary, keywords and study questions as JSON.
const AnalysisPrompt = `Analyze the following academic text and provide:
1. A concise summary (2-3 sentences)
2. Key terms and concepts (5-8 keywords)
3. Study questions that test understanding (4-6 questions)

Provide your response in JSON format with 'summary', 'keywords', and 'questions' fields.
Make questions varied in difficulty and type (factual, analytical, application-based).`
