package worker

import (
	"context"
	"encoding/json"

	"github.com/filesmanager/filesmanager/internal/authx"
	"github.com/filesmanager/filesmanager/internal/jobs"
	"github.com/filesmanager/filesmanager/internal/meta"
	"github.com/filesmanager/filesmanager/internal/queue"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// FindUserFn is the signature for any function that can find a User by ID.
type FindUserFn func(ctx context.Context, id string) (authx.User, error)

// SendFn is the signature for any function that can deliver a message to an
// email address.
type SendFn func(ctx context.Context, to string, message string) error

// LogSender is a SendFn that only logs what it would have sent.
func LogSender(_ context.Context, to string, message string) error {
	glog.Infof("%s %s", message, to)
	return nil
}

// NewEmailSendingHandler returns a queue.HandlerFn that sends a welcome email
// to the User named by each job on the jobs.QueueEmailSending queue. Jobs that
// can never succeed (malformed, or for a User that no longer exists) are
// logged and dropped. Any other failure is returned so the job stays
// unacknowledged and is redelivered.
func NewEmailSendingHandler(
	findUser FindUserFn,
	send SendFn,
) queue.HandlerFn {
	return func(ctx context.Context, msg queue.Message) error {
		job := jobs.EmailSending{}
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			glog.Errorf("dropping malformed job %q: %s", msg.ID, err)
			return nil
		}
		if job.UserID == "" {
			glog.Errorf("dropping job %q: missing userId", msg.ID)
			return nil
		}
		user, err := findUser(ctx, job.UserID)
		if err != nil {
			if _, ok := errors.Cause(err).(*meta.ErrNotFound); ok {
				glog.Errorf(
					"dropping job %q: user %q not found",
					msg.ID,
					job.UserID,
				)
				return nil
			}
			return errors.Wrapf(err, "error finding user %q", job.UserID)
		}
		if err := send(ctx, user.Email, "Welcome"); err != nil {
			return errors.Wrapf(
				err,
				"error sending welcome email to user %q",
				user.ID,
			)
		}
		return nil
	}
}
