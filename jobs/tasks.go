package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeWelcomeEmail is the task type for welcome mails on account creation.
	TaskTypeWelcomeEmail = "mail:welcome"
	// TaskTypeAuditSweep is the task type for trimming old audit log rows.
	TaskTypeAuditSweep = "audit:sweep"
)

// WelcomeEmailPayload describes the information required to greet a new account.
type WelcomeEmailPayload struct {
	To       string `json:"to"`
	Username string `json:"username"`
}

// NewWelcomeEmailTask constructs an Asynq task.
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeWelcomeEmail, data), nil
}

// SMTPConfig carries mail relay settings for the worker.
type SMTPConfig struct {
	Host string
	Port int
	From string
}

// NewWelcomeEmailHandler returns the handler for TaskTypeWelcomeEmail tasks.
func NewWelcomeEmailHandler(cfg SMTPConfig, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload WelcomeEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Welcome to Praetor\r\n\r\nHi %s,\r\n\r\nYour account is ready. An administrator assigns your roles.\r\n",
			cfg.From, payload.To, payload.Username)
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		if err := smtp.SendMail(addr, nil, cfg.From, []string{payload.To}, []byte(msg)); err != nil {
			return err
		}
		logger.Info("welcome email sent", slog.String("to", payload.To))
		return nil
	}
}

// AuditSweepPayload bounds one retention sweep.
type AuditSweepPayload struct {
	Retention time.Duration `json:"retention"`
}

// NewAuditSweepTask constructs an Asynq task.
func NewAuditSweepTask(payload AuditSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeAuditSweep, data), nil
}

// AuditStore is the slice of the database pool the sweep needs.
type AuditStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// NewAuditSweepHandler returns the handler for TaskTypeAuditSweep tasks. It
// deletes audit rows whose occurred_at falls outside the retention window.
func NewAuditSweepHandler(store AuditStore, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload AuditSweepPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if payload.Retention <= 0 {
			return asynq.SkipRetry
		}
		cutoff := time.Now().UTC().Add(-payload.Retention)
		tag, err := store.Exec(ctx, `DELETE FROM audit_logs WHERE occurred_at < $1`, cutoff)
		if err != nil {
			return err
		}
		logger.Info("audit sweep done",
			slog.Int64("deleted", tag.RowsAffected()),
			slog.Time("cutoff", cutoff),
		)
		return nil
	}
}
