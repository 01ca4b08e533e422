package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"studybuddy/internal/ai"
	"studybuddy/internal/logger"
	"studybuddy/internal/repository"
)

const globalChatTopic = "general knowledge"

var motivationalMessages = []string{
	"Great job on your study session! Every minute counts towards your goals! 🌟",
	"Consistency is key! You're building valuable knowledge with each study session. 💪",
	"Remember why you started! Your future self will thank you for this effort. 🎯",
	"Learning is a journey. Celebrate your progress, no matter how small! 🎉",
	"You're developing skills that will open new opportunities. Keep going! 🚀",
	"The expert in anything was once a beginner. Keep pushing forward! 🌈",
	"Every question you ask brings you closer to mastery. Stay curious! 🔍",
	"You're not just studying - you're building your future self! 🌠",
	"Small progress is still progress. Keep that momentum going! ⚡",
	"Your brain is getting stronger with every study session! 🧠",
}

// AssistantService answers free-text questions and hands out encouragement.
type AssistantService interface {
	// Ask answers a question. A non-empty sessionID must name an owned session, whose
	// question counter is incremented and whose topic frames the prompt.
	Ask(ctx context.Context, userID, sessionID, question string) (string, error)

	// Motivation returns one of a fixed set of encouraging messages.
	Motivation() string
}

type assistantService struct {
	sessions repository.SessionRepository
	gen      ai.Generator
	log      *zap.Logger
	pick     func(n int) int
}

// NewAssistantService constructs an AssistantService.
func NewAssistantService(sessions repository.SessionRepository, gen ai.Generator, log *zap.Logger) AssistantService {
	return &assistantService{
		sessions: sessions,
		gen:      gen,
		log:      logger.Component(log, "assistant"),
		pick:     rand.IntN,
	}
}

func (s *assistantService) Ask(ctx context.Context, userID, sessionID, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrQuestionRequired
	}

	topic := globalChatTopic
	if sessionID != "" {
		sess, err := s.sessions.FindByID(ctx, userID, sessionID)
		if err != nil {
			return "", notFound(err)
		}
		if err := s.sessions.IncrementQuestions(ctx, userID, sessionID); err != nil {
			return "", notFound(err)
		}
		topic = sess.Topic
	}

	prompt := fmt.Sprintf(`You are an AI Study Buddy helping a student learn %s.
The student asks: %q
Provide a clear, concise, and helpful explanation suitable for a student.`, topic, question)

	answer, ok := generate(ctx, s.gen, s.log, "ask", prompt)
	observeAI("ask", ok)
	if !ok {
		return offlineAnswer(topic), nil
	}
	return answer, nil
}

func offlineAnswer(topic string) string {
	return fmt.Sprintf("I'm currently in offline mode, but that's a great question about %s! Try looking it up in the recommended resources.", topic)
}

func (s *assistantService) Motivation() string {
	return motivationalMessages[s.pick(len(motivationalMessages))]
}

// generate calls the model when one is configured. Failures are logged and reported
// as ok=false so the caller can serve its fallback.
func generate(ctx context.Context, gen ai.Generator, log *zap.Logger, operation, prompt string) (string, bool) {
	if gen == nil || !gen.Available() {
		return "", false
	}
	text, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Warn("ai_request_failed", zap.String("operation", operation), zap.Error(err))
		return "", false
	}
	return text, true
}

// generateJSON is generate followed by ai.DecodeJSON into v.
func generateJSON(ctx context.Context, gen ai.Generator, log *zap.Logger, operation, prompt string, v any) bool {
	text, ok := generate(ctx, gen, log, operation, prompt)
	if !ok {
		return false
	}
	if err := ai.DecodeJSON(text, v); err != nil {
		log.Warn("ai_response_unparseable", zap.String("operation", operation), zap.Error(err))
		return false
	}
	return true
}
