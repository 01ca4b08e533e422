package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"studybuddy/internal/ai"
	"studybuddy/internal/logger"
	"studybuddy/internal/model"
)

const defaultFlashcardCount = 5

// FlashcardService generates study cards for a topic.
type FlashcardService interface {
	Generate(ctx context.Context, topic string, count int) ([]model.Flashcard, error)
}

type flashcardService struct {
	gen    ai.Generator
	log    *zap.Logger
	policy *bluemonday.Policy
}

// NewFlashcardService constructs a FlashcardService.
func NewFlashcardService(gen ai.Generator, log *zap.Logger) FlashcardService {
	return &flashcardService{
		gen:    gen,
		log:    logger.Component(log, "flashcard_service"),
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *flashcardService) Generate(ctx context.Context, topic string, count int) ([]model.Flashcard, error) {
	topic = strings.TrimSpace(topic)
	if count <= 0 {
		count = defaultFlashcardCount
	}

	prompt := fmt.Sprintf(`Create %d flashcards for the topic %q.
Return ONLY a valid JSON array of objects. Each object must have:
- front: string (the question or term)
- back: string (the answer or definition)
Example: [{"front": "Term", "back": "Definition"}]`, count, topic)

	var raw []model.Flashcard
	ok := generateJSON(ctx, s.gen, s.log, "flashcards", prompt, &raw)
	cards := s.sanitize(raw)
	ok = ok && len(cards) > 0
	observeAI("flashcards", ok)
	if !ok {
		return fallbackFlashcards(topic), nil
	}
	return cards, nil
}

// sanitize strips markup from model text and drops cards left without a front or back.
func (s *flashcardService) sanitize(cards []model.Flashcard) []model.Flashcard {
	out := make([]model.Flashcard, 0, len(cards))
	for _, c := range cards {
		c.Front = plainText(s.policy, c.Front)
		c.Back = plainText(s.policy, c.Back)
		if c.Front == "" || c.Back == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func fallbackFlashcards(topic string) []model.Flashcard {
	return []model.Flashcard{
		{Front: fmt.Sprintf("What is %s?", topic), Back: fmt.Sprintf("A key concept in %s.", topic)},
		{Front: "Key Term 1", Back: "Definition of key term 1."},
		{Front: "Key Term 2", Back: "Definition of key term 2."},
	}
}
