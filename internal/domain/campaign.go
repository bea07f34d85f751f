package domain

import (
	"context"
	"time"
)

// CampaignKind distinguishes event-bound campaigns from free-standing announcements.
type CampaignKind string

const (
	CampaignKindEvent        CampaignKind = "event"
	CampaignKindAnnouncement CampaignKind = "announcement"
)

// CampaignStatus is the campaign lifecycle: draft -> scheduled -> sent, or
// draft -> sent when dispatched directly. Sent is terminal.
type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusSent      CampaignStatus = "sent"
)

// RecipientStatus tracks per-recipient delivery. Every recipient starts
// pending; a dispatch pass moves it to sent or failed exactly once.
type RecipientStatus string

const (
	RecipientStatusPending RecipientStatus = "pending"
	RecipientStatusSent    RecipientStatus = "sent"
	RecipientStatusFailed  RecipientStatus = "failed"
)

// Campaign represents an SMS campaign.
// swagger:model Campaign
type Campaign struct {
	ID           int64          `json:"id"`
	Kind         CampaignKind   `json:"kind"`
	Message      string         `json:"message"`
	EventID      *int64         `json:"event_id"`
	Status       CampaignStatus `json:"status"`
	ScheduledFor *time.Time     `json:"scheduled_for"`
	SentAt       *time.Time     `json:"sent_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewCampaign returns a new draft Campaign. ID is set by the repository on create.
func NewCampaign(kind CampaignKind, message string, eventID *int64, createdAt, updatedAt time.Time) *Campaign {
	return &Campaign{
		Kind:      kind,
		Message:   message,
		EventID:   eventID,
		Status:    CampaignStatusDraft,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CampaignRecipient is one delivery target of a campaign. Phone numbers are
// unique within a campaign.
// swagger:model CampaignRecipient
type CampaignRecipient struct {
	ID          int64           `json:"id"`
	CampaignID  int64           `json:"campaign_id"`
	PhoneNumber string          `json:"phone_number"`
	Name        *string         `json:"name"`
	AttendeeID  *int64          `json:"attendee_id"`
	Status      RecipientStatus `json:"status"`
	SentAt      *time.Time      `json:"sent_at"`
	Error       *string         `json:"error"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecipientContact is a manually attached delivery target.
type RecipientContact struct {
	PhoneNumber string  `json:"phone_number"`
	Name        *string `json:"name"`
}

// RecipientCounts summarizes delivery state across a campaign's recipients.
type RecipientCounts struct {
	Pending int `json:"pending"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
}

// DispatchSummary reports the outcome of one dispatch pass.
type DispatchSummary struct {
	SentCount   int `json:"sent_count"`
	FailedCount int `json:"failed_count"`
}

// CampaignRepository defines storage operations for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id int64) (*Campaign, error)
	List(ctx context.Context, params PaginationParams) ([]*Campaign, int, error)
	// Schedule moves a draft campaign to scheduled. Returns ErrInvalidState
	// when the campaign is not a draft.
	Schedule(ctx context.Context, id int64, at time.Time) (*Campaign, error)
	// MarkSent moves a draft or scheduled campaign to sent. Returns
	// ErrInvalidState when the campaign is already sent.
	MarkSent(ctx context.Context, id int64, at time.Time) error
	// ListDueScheduled returns scheduled campaigns whose scheduled_for has passed.
	ListDueScheduled(ctx context.Context, now time.Time, limit int) ([]*Campaign, error)
	// AcquireDispatchLock takes a session-scoped advisory lock for the
	// campaign, serializing concurrent dispatch passes. When acquired is true
	// the caller must invoke release.
	AcquireDispatchLock(ctx context.Context, id int64) (release func(), acquired bool, err error)
	// Delete removes a draft campaign and its recipients.
	Delete(ctx context.Context, id int64) error
}

// CampaignRecipientRepository defines storage operations for campaign recipients.
type CampaignRecipientRepository interface {
	// Attach inserts recipients, silently skipping phone numbers already
	// attached to the campaign. Returns the number actually inserted.
	Attach(ctx context.Context, campaignID int64, recipients []*CampaignRecipient) (int, error)
	ListByCampaignID(ctx context.Context, campaignID int64, status *RecipientStatus) ([]*CampaignRecipient, error)
	// MarkSent transitions a pending recipient to sent. Returns
	// ErrInvalidState when the row is no longer pending.
	MarkSent(ctx context.Context, id int64, at time.Time) error
	// MarkFailed transitions a pending recipient to failed, recording the error.
	MarkFailed(ctx context.Context, id int64, sendErr string) error
	CountByStatus(ctx context.Context, campaignID int64) (RecipientCounts, error)
}

// SMSSender delivers one message to one phone number (infrastructure port).
type SMSSender interface {
	Send(ctx context.Context, phoneNumber, message string) error
}

// CampaignService defines the business logic for SMS campaigns.
type CampaignService interface {
	Create(ctx context.Context, kind CampaignKind, message string, eventID *int64) (*Campaign, error)
	GetByID(ctx context.Context, id int64) (*Campaign, []*CampaignRecipient, RecipientCounts, error)
	List(ctx context.Context, params PaginationParams) ([]*Campaign, int, error)
	// AttachContacts adds manual recipients to a draft campaign.
	AttachContacts(ctx context.Context, campaignID int64, contacts []RecipientContact) (int, error)
	// AttachEventAttendees seeds a draft event campaign with the linked
	// event's attendees that have a phone number.
	AttachEventAttendees(ctx context.Context, campaignID int64) (int, error)
	Schedule(ctx context.Context, campaignID int64, at time.Time) (*Campaign, error)
	// Dispatch runs one delivery pass over the campaign's pending recipients
	// and marks the campaign sent. Re-running after a partial pass only
	// touches recipients still pending.
	Dispatch(ctx context.Context, campaignID int64) (*DispatchSummary, error)
	// DispatchDue dispatches every scheduled campaign whose time has come.
	// Returns the number of campaigns processed.
	DispatchDue(ctx context.Context, now time.Time) (int, error)
	Delete(ctx context.Context, campaignID int64) error
}
