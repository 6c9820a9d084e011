package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meetwise/core/constants"
	"meetwise/core/logger"
	"meetwise/modules/notification/entity"
	"meetwise/modules/notification/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// MeetingCommittedPayload is the asynq task payload for meeting fan-out
type MeetingCommittedPayload struct {
	MeetingID      string      `json:"meeting_id"`
	Title          string      `json:"title"`
	StartTime      time.Time   `json:"start_time"`
	ParticipantIDs []uuid.UUID `json:"participant_ids"`
}

// Notifier enqueues notification tasks. It satisfies the scheduling module's
// CommitNotifier so the HTTP request only pays for an enqueue, not for the
// per-participant writes.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) NotifyMeetingCommitted(ctx context.Context, meetingID, title string, startTime time.Time, userIDs []uuid.UUID) error {
	payload, err := json.Marshal(MeetingCommittedPayload{
		MeetingID:      meetingID,
		Title:          title,
		StartTime:      startTime,
		ParticipantIDs: userIDs,
	})
	if err != nil {
		return fmt.Errorf("marshal meeting committed payload: %w", err)
	}

	task := asynq.NewTask(constants.TaskTypeMeetingCommitted, payload, asynq.MaxRetry(3))
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue meeting committed task: %w", err)
	}

	logger.Info("Notifier:NotifyMeetingCommitted:Enqueued", "task_id", info.ID, "meeting_id", meetingID)
	return nil
}

// Handler processes notification tasks
type Handler struct {
	svc service.NotificationServiceInterface
}

func NewHandler(svc service.NotificationServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Register wires the task handlers onto the asynq mux
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeMeetingCommitted, h.HandleMeetingCommitted)
}

// HandleMeetingCommitted writes one notification row per participant
func (h *Handler) HandleMeetingCommitted(ctx context.Context, t *asynq.Task) error {
	var payload MeetingCommittedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		// Malformed payloads never succeed; do not retry
		return fmt.Errorf("unmarshal meeting committed payload: %v: %w", err, asynq.SkipRetry)
	}

	body := fmt.Sprintf("%q is scheduled for %s", payload.Title, payload.StartTime.Format("Mon, 02 Jan 2006 15:04"))

	err := h.svc.CreateForUsers(ctx, payload.ParticipantIDs,
		entity.NotificationTypeMeetingCommitted, "Meeting scheduled", body)
	if err != nil {
		logger.Error("Handler:HandleMeetingCommitted", "error", err, "meeting_id", payload.MeetingID)
		return err
	}

	return nil
}
