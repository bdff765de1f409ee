package savedsearches

import (
	"context"

	"karoo-backend/internal/emails"
	"karoo-backend/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Digest cron expressions: daily 06:00, weekly Monday 06:00, monthly 1st 06:00.
const (
	dailySpec   = "0 6 * * *"
	weeklySpec  = "0 6 * * 1"
	monthlySpec = "0 6 1 * *"
)

// Scheduler runs saved-search digests off the request path.
type Scheduler struct {
	service *Service
	db      *gorm.DB
	emails  emails.Sender
	cron    *cron.Cron
}

func NewScheduler(service *Service, db *gorm.DB, sender emails.Sender) *Scheduler {
	return &Scheduler{
		service: service,
		db:      db,
		emails:  sender,
		cron:    cron.New(),
	}
}

// Start registers the three digest jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	jobs := map[string]string{
		models.FrequencyDaily:   dailySpec,
		models.FrequencyWeekly:  weeklySpec,
		models.FrequencyMonthly: monthlySpec,
	}
	for frequency, spec := range jobs {
		freq := frequency
		if _, err := s.cron.AddFunc(spec, func() {
			s.RunDigest(context.Background(), freq)
		}); err != nil {
			return err
		}
	}
	s.cron.Start()
	log.Info().Msg("saved-search digest scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunDigest executes every saved search subscribed to the frequency and
// emails match counts to owners with the digest preference enabled. Failures
// are per-search; one bad search never aborts the batch.
func (s *Scheduler) RunDigest(ctx context.Context, frequency string) {
	searches, err := s.service.DueForFrequency(ctx, frequency)
	if err != nil {
		log.Error().Err(err).Str("frequency", frequency).Msg("digest query failed")
		return
	}
	for i := range searches {
		ss := &searches[i]
		res, err := s.service.Run(ctx, ss)
		if err != nil {
			log.Warn().Err(err).Str("search_id", ss.SearchID.String()).Msg("saved search run failed")
			continue
		}
		log.Info().
			Str("search_id", ss.SearchID.String()).
			Str("frequency", frequency).
			Int("matches", len(res.Properties)).
			Msg("saved search digest run")

		if s.emails == nil {
			continue
		}
		var owner models.User
		if err := s.db.WithContext(ctx).Where("user_id = ?", ss.UserID).First(&owner).Error; err != nil {
			continue
		}
		if !owner.Preferences.SavedSearchDigest {
			continue
		}
		if err := s.emails.SendSearchDigest(ctx, owner.Email, ss.Name, len(res.Properties)); err != nil {
			log.Warn().Err(err).Str("search_id", ss.SearchID.String()).Msg("digest email failed")
		}
	}
}
