package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"studybuddy/internal/logger"
	"studybuddy/internal/model"
	"studybuddy/internal/repository"
	"studybuddy/internal/storage"
)

const (
	defaultSessionTopic = "general"
	defaultConfidence   = 5

	materialUpdateAttempts = 3
)

// MaterialUpload describes a file attached to a session.
type MaterialUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// SessionService manages timed study sittings and their attached materials.
type SessionService interface {
	Create(ctx context.Context, userID, topic string) (*model.StudySession, error)

	// List returns the user's sessions, newest first.
	List(ctx context.Context, userID string) ([]model.StudySession, error)

	// End closes an open session. A nil confidence stores the default of 5.
	End(ctx context.Context, userID, sessionID string, confidence *int) (*model.StudySession, error)

	// CountQuestion increments the question counter of an owned session.
	CountQuestion(ctx context.Context, userID, sessionID string) error

	// AttachMaterial uploads a file and records its key in materials_covered.
	AttachMaterial(ctx context.Context, userID, sessionID string, in MaterialUpload) (*model.StudySession, error)

	// MaterialURL presigns a download link for a material of an owned session.
	MaterialURL(ctx context.Context, userID, sessionID, key string) (string, time.Duration, error)
}

type sessionService struct {
	repo   repository.SessionRepository
	store  storage.Storage
	urlTTL time.Duration
	log    *zap.Logger
	now    Clock
}

// NewSessionService constructs a SessionService. store may be nil when object storage
// is not configured; material operations then fail with ErrStorageDisabled.
func NewSessionService(repo repository.SessionRepository, store storage.Storage, urlTTL time.Duration, log *zap.Logger) SessionService {
	return &sessionService{
		repo:   repo,
		store:  store,
		urlTTL: urlTTL,
		log:    logger.Component(log, "session_service"),
		now:    systemClock,
	}
}

func (s *sessionService) Create(ctx context.Context, userID, topic string) (*model.StudySession, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultSessionTopic
	}
	sess := &model.StudySession{
		ID:               uuid.NewString(),
		UserID:           userID,
		Topic:            topic,
		MaterialsCovered: []string{},
		StartTime:        s.now(),
	}
	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *sessionService) List(ctx context.Context, userID string) ([]model.StudySession, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *sessionService) End(ctx context.Context, userID, sessionID string, confidence *int) (*model.StudySession, error) {
	sess, err := s.repo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return nil, notFound(err)
	}
	if sess.Ended() {
		return nil, ErrSessionEnded
	}

	end := s.now()
	sess.EndTime = &end
	sess.Duration = max(int(end.Sub(sess.StartTime)/time.Minute), 0)
	sess.ConfidenceLevel = defaultConfidence
	if confidence != nil {
		sess.ConfidenceLevel = *confidence
	}

	if err := s.repo.End(ctx, sess); err != nil {
		// Zero rows means another request ended it first.
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionEnded
		}
		return nil, fmt.Errorf("end session: %w", err)
	}
	return sess, nil
}

func (s *sessionService) CountQuestion(ctx context.Context, userID, sessionID string) error {
	return notFound(s.repo.IncrementQuestions(ctx, userID, sessionID))
}

func (s *sessionService) AttachMaterial(ctx context.Context, userID, sessionID string, in MaterialUpload) (*model.StudySession, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	sess, err := s.repo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return nil, notFound(err)
	}

	key := storage.NewMaterialKey(sess.ID, in.Filename)
	if _, err := s.store.Put(ctx, key, in.Reader, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata:    storage.MaterialMetadata(in.Filename),
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	sess, err = s.recordMaterial(ctx, userID, sess, key)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.log.Error("material_rollback_failed", zap.String("key", key), zap.Error(delErr))
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return sess, nil
}

// recordMaterial appends key to materials_covered. A concurrent upload to the same
// session makes the conditional update miss; the session is then re-read and the
// append retried on the fresh list.
func (s *sessionService) recordMaterial(ctx context.Context, userID string, sess *model.StudySession, key string) (*model.StudySession, error) {
	for attempt := 1; ; attempt++ {
		materials := append(slices.Clone(sess.MaterialsCovered), key)
		err := s.repo.UpdateMaterials(ctx, userID, sess.ID, sess.MaterialsCovered, materials)
		if err == nil {
			sess.MaterialsCovered = materials
			return sess, nil
		}
		if !errors.Is(err, repository.ErrConflict) || attempt == materialUpdateAttempts {
			return nil, err
		}
		s.log.Debug("material_update_retry", zap.String("session_id", sess.ID), zap.Int("attempt", attempt))
		if sess, err = s.repo.FindByID(ctx, userID, sess.ID); err != nil {
			return nil, notFound(err)
		}
	}
}

func (s *sessionService) MaterialURL(ctx context.Context, userID, sessionID, key string) (string, time.Duration, error) {
	if s.store == nil {
		return "", 0, ErrStorageDisabled
	}
	sess, err := s.repo.FindByID(ctx, userID, sessionID)
	if err != nil {
		return "", 0, notFound(err)
	}
	if !slices.Contains(sess.MaterialsCovered, key) {
		return "", 0, ErrNotFound
	}
	u, err := s.store.PresignGet(ctx, key, s.urlTTL)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return "", 0, ErrNotFound
	}
	if err != nil {
		return "", 0, fmt.Errorf("presign material: %w", err)
	}
	return u, s.urlTTL, nil
}
