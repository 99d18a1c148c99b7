package jobs

// QueueEmailSending is the name of the queue onto which a welcome email job is
// submitted for every newly registered user.
const QueueEmailSending = "email sending"

// EmailSending is the payload of a job on the QueueEmailSending queue.
type EmailSending struct {
	UserID string `json:"userId"`
}
