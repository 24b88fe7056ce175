package engine

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UnknownQuestionEvent records a turn no entry could answer. Emitted
// exactly once per such turn, fire-and-forget.
type UnknownQuestionEvent struct {
	ID        uuid.UUID
	UserID    int64
	Question  string
	Timestamp time.Time
}

// FeedbackEvent records a like/dislike on a previously-shown answer,
// together with the question the answer was attributed to.
type FeedbackEvent struct {
	ID         uuid.UUID
	UserID     int64
	EntryIndex int
	Liked      bool
	Question   string
	Answer     string
	Timestamp  time.Time
}

// EventSink receives the events the engine decides to emit. How they are
// persisted is the collaborator's business; the engine only decides when.
type EventSink interface {
	UnknownQuestion(ev UnknownQuestionEvent)
	Feedback(ev FeedbackEvent)
}

// LogSink writes events to the structured log. The default sink when no
// durable collaborator is wired in.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) UnknownQuestion(ev UnknownQuestionEvent) {
	s.logger.Info("Unknown question",
		zap.String("event_id", ev.ID.String()),
		zap.Int64("user_id", ev.UserID),
		zap.String("question", ev.Question),
		zap.Time("timestamp", ev.Timestamp))
}

func (s *LogSink) Feedback(ev FeedbackEvent) {
	s.logger.Info("Answer feedback",
		zap.String("event_id", ev.ID.String()),
		zap.Int64("user_id", ev.UserID),
		zap.Int("entry_index", ev.EntryIndex),
		zap.Bool("liked", ev.Liked),
		zap.String("question", ev.Question),
		zap.Time("timestamp", ev.Timestamp))
}
