package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"communityevents/internal/domain"
)

// dueBatchSize caps how many due campaigns one worker pass picks up.
const dueBatchSize = 10

type campaignService struct {
	campaignRepo   domain.CampaignRepository
	recipientRepo  domain.CampaignRecipientRepository
	attendeeRepo   domain.AttendeeRepository
	eventRepo      domain.EventRepository
	sms            domain.SMSSender
	concurrency    int
	contextTimeout time.Duration
	// dispatchTimeout bounds a whole delivery pass, which can span many
	// gateway calls.
	dispatchTimeout time.Duration
}

func NewCampaignService(
	campaignRepo domain.CampaignRepository,
	recipientRepo domain.CampaignRecipientRepository,
	attendeeRepo domain.AttendeeRepository,
	eventRepo domain.EventRepository,
	sms domain.SMSSender,
	concurrency int,
	timeout time.Duration,
	dispatchTimeout time.Duration,
) domain.CampaignService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &campaignService{
		campaignRepo:    campaignRepo,
		recipientRepo:   recipientRepo,
		attendeeRepo:    attendeeRepo,
		eventRepo:       eventRepo,
		sms:             sms,
		concurrency:     concurrency,
		contextTimeout:  timeout,
		dispatchTimeout: dispatchTimeout,
	}
}

func (s *campaignService) Create(ctx context.Context, kind domain.CampaignKind, message string, eventID *int64) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	switch kind {
	case domain.CampaignKindEvent:
		if eventID == nil {
			return nil, fmt.Errorf("%w: event campaigns require an event_id", domain.ErrInvalidInput)
		}
		if _, err := s.eventRepo.GetByID(ctx, *eventID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
	case domain.CampaignKindAnnouncement:
		if eventID != nil {
			return nil, fmt.Errorf("%w: announcements cannot reference an event", domain.ErrInvalidInput)
		}
	default:
		return nil, fmt.Errorf("%w: unknown campaign kind %q", domain.ErrInvalidInput, kind)
	}

	now := time.Now()
	campaign := domain.NewCampaign(kind, message, eventID, now, now)
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return campaign, nil
}

func (s *campaignService) GetByID(ctx context.Context, id int64) (*domain.Campaign, []*domain.CampaignRecipient, domain.RecipientCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.RecipientCounts{}, domain.ErrNotFound
		}
		return nil, nil, domain.RecipientCounts{}, fmt.Errorf("get campaign: %w", err)
	}
	recipients, err := s.recipientRepo.ListByCampaignID(ctx, id, nil)
	if err != nil {
		return nil, nil, domain.RecipientCounts{}, fmt.Errorf("list recipients: %w", err)
	}
	if recipients == nil {
		recipients = []*domain.CampaignRecipient{}
	}
	counts, err := s.recipientRepo.CountByStatus(ctx, id)
	if err != nil {
		return nil, nil, domain.RecipientCounts{}, fmt.Errorf("count recipients: %w", err)
	}
	return campaign, recipients, counts, nil
}

func (s *campaignService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Campaign, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	campaigns, total, err := s.campaignRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []*domain.Campaign{}
	}
	return campaigns, total, nil
}

// draftByID fetches the campaign and rejects recipient changes once it left draft.
func (s *campaignService) draftByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if campaign.Status != domain.CampaignStatusDraft {
		return nil, fmt.Errorf("%w: recipients can only change on a draft campaign", domain.ErrInvalidState)
	}
	return campaign, nil
}

func (s *campaignService) AttachContacts(ctx context.Context, campaignID int64, contacts []domain.RecipientContact) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.draftByID(ctx, campaignID); err != nil {
		return 0, err
	}

	now := time.Now()
	recipients := make([]*domain.CampaignRecipient, 0, len(contacts))
	for _, c := range contacts {
		phone := strings.TrimSpace(c.PhoneNumber)
		if phone == "" {
			return 0, fmt.Errorf("%w: phone_number is required for every contact", domain.ErrInvalidInput)
		}
		recipients = append(recipients, &domain.CampaignRecipient{
			CampaignID:  campaignID,
			PhoneNumber: phone,
			Name:        c.Name,
			Status:      domain.RecipientStatusPending,
			CreatedAt:   now,
		})
	}
	if len(recipients) == 0 {
		return 0, fmt.Errorf("%w: no contacts given", domain.ErrInvalidInput)
	}

	inserted, err := s.recipientRepo.Attach(ctx, campaignID, recipients)
	if err != nil {
		return inserted, fmt.Errorf("attach recipients: %w", err)
	}
	return inserted, nil
}

func (s *campaignService) AttachEventAttendees(ctx context.Context, campaignID int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	campaign, err := s.draftByID(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	if campaign.Kind != domain.CampaignKindEvent || campaign.EventID == nil {
		return 0, fmt.Errorf("%w: campaign is not linked to an event", domain.ErrInvalidInput)
	}

	attendees, err := s.attendeeRepo.ListContactsByEventID(ctx, *campaign.EventID)
	if err != nil {
		return 0, fmt.Errorf("list attendee contacts: %w", err)
	}

	now := time.Now()
	recipients := make([]*domain.CampaignRecipient, 0, len(attendees))
	for _, a := range attendees {
		if a.Phone == nil {
			continue
		}
		attendeeID := a.ID
		name := a.Name
		recipients = append(recipients, &domain.CampaignRecipient{
			CampaignID:  campaignID,
			PhoneNumber: *a.Phone,
			Name:        &name,
			AttendeeID:  &attendeeID,
			Status:      domain.RecipientStatusPending,
			CreatedAt:   now,
		})
	}
	if len(recipients) == 0 {
		return 0, nil
	}

	inserted, err := s.recipientRepo.Attach(ctx, campaignID, recipients)
	if err != nil {
		return inserted, fmt.Errorf("attach recipients: %w", err)
	}
	return inserted, nil
}

func (s *campaignService) Schedule(ctx context.Context, campaignID int64, at time.Time) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if at.IsZero() {
		return nil, fmt.Errorf("%w: scheduled_for is required", domain.ErrInvalidInput)
	}
	campaign, err := s.campaignRepo.Schedule(ctx, campaignID, at)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return nil, err
		}
		return nil, fmt.Errorf("schedule campaign: %w", err)
	}
	return campaign, nil
}

// Dispatch runs one delivery pass. Only recipients still pending are touched,
// so re-running after a crash or partial pass resumes instead of re-sending.
// The advisory lock keeps two passes for the same campaign from interleaving.
func (s *campaignService) Dispatch(ctx context.Context, campaignID int64) (*domain.DispatchSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	if campaign.Status == domain.CampaignStatusSent {
		return nil, fmt.Errorf("%w: campaign already sent", domain.ErrInvalidState)
	}
	// A scheduled campaign only goes out once its time has come; the worker
	// and a manual dispatch both wait for scheduled_for.
	if campaign.Status == domain.CampaignStatusScheduled && campaign.ScheduledFor != nil && campaign.ScheduledFor.After(time.Now()) {
		return nil, fmt.Errorf("%w: campaign is not due until %s", domain.ErrInvalidState, campaign.ScheduledFor.Format(time.RFC3339))
	}

	release, acquired, err := s.campaignRepo.AcquireDispatchLock(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("acquire dispatch lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w: a dispatch pass is already running", domain.ErrInvalidState)
	}
	defer release()

	pending := domain.RecipientStatusPending
	recipients, err := s.recipientRepo.ListByCampaignID(ctx, campaignID, &pending)
	if err != nil {
		return nil, fmt.Errorf("list pending recipients: %w", err)
	}

	summary := s.deliver(ctx, campaign, recipients)

	if err := s.campaignRepo.MarkSent(ctx, campaignID, time.Now()); err != nil {
		return nil, fmt.Errorf("mark campaign sent: %w", err)
	}
	return summary, nil
}

// deliver fans the pending recipients out over a bounded pool. A gateway
// failure marks that one recipient failed and never aborts the pass.
func (s *campaignService) deliver(ctx context.Context, campaign *domain.Campaign, recipients []*domain.CampaignRecipient) *domain.DispatchSummary {
	jobs := make(chan *domain.CampaignRecipient)
	var mu sync.Mutex
	summary := &domain.DispatchSummary{}

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				if sendErr := s.sms.Send(ctx, rec.PhoneNumber, campaign.Message); sendErr != nil {
					if err := s.recipientRepo.MarkFailed(ctx, rec.ID, sendErr.Error()); err != nil {
						log.Printf("[CAMPAIGN] mark recipient %d failed: %v", rec.ID, err)
						continue
					}
					mu.Lock()
					summary.FailedCount++
					mu.Unlock()
					continue
				}
				if err := s.recipientRepo.MarkSent(ctx, rec.ID, time.Now()); err != nil {
					log.Printf("[CAMPAIGN] mark recipient %d sent: %v", rec.ID, err)
					continue
				}
				mu.Lock()
				summary.SentCount++
				mu.Unlock()
			}
		}()
	}
	for _, rec := range recipients {
		jobs <- rec
	}
	close(jobs)
	wg.Wait()

	return summary
}

// DispatchDue runs a dispatch pass for every scheduled campaign whose time has
// come. A failing campaign is logged and skipped so the rest still go out.
func (s *campaignService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	listCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	due, err := s.campaignRepo.ListDueScheduled(listCtx, now, dueBatchSize)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("list due campaigns: %w", err)
	}

	processed := 0
	for _, campaign := range due {
		if _, err := s.Dispatch(ctx, campaign.ID); err != nil {
			log.Printf("[CAMPAIGN] dispatch of due campaign %d failed: %v", campaign.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *campaignService) Delete(ctx context.Context, campaignID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.campaignRepo.Delete(ctx, campaignID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidState) {
			return err
		}
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}
