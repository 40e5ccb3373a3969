package form

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a completed, validated name+phone submission ready for
// operator notification. It is transient: produced once per finished
// form and handed straight to the notifier.
type Lead struct {
	ID          string
	Name        string
	Phone       string
	UserID      int64
	ChatID      int64
	Username    string
	DisplayName string
	SubmittedAt time.Time
}

// NewLead assembles a Lead from the accumulated form fields and the
// metadata of the update that completed it.
func NewLead(name, formattedPhone string, meta Meta) *Lead {
	submitted := meta.SentAt
	if submitted.IsZero() {
		submitted = time.Now()
	}
	return &Lead{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       formattedPhone,
		UserID:      meta.UserID,
		ChatID:      meta.ChatID,
		Username:    meta.Username,
		DisplayName: meta.DisplayName,
		SubmittedAt: submitted,
	}
}
