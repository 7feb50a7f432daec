package report

import (
	"github.com/https-dhanesh/Classifieds-App-Base/config"
	"github.com/https-dhanesh/Classifieds-App-Base/db"
	"github.com/https-dhanesh/Classifieds-App-Base/log"
	"github.com/robfig/cron/v3"
	"gopkg.in/gomail.v2"
)

// Worker emails the admin a daily platform summary
type Worker struct {
	schedule string
	cron     *cron.Cron
	send     func(subject, body string) error
}

// NewWorker creates the report worker from configuration
func NewWorker() *Worker {
	cfg := config.Get()
	return &Worker{
		schedule: cfg.ReportSchedule,
		send:     smtpSender(cfg),
	}
}

// Start schedules the daily report. No report is scheduled when email is
// not configured.
func (w *Worker) Start() {
	if w.send == nil {
		log.Warn().Msg("EMAIL_USER not configured, daily report disabled")
		return
	}

	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.Run); err != nil {
		log.Error().Err(err).Str("schedule", w.schedule).Msg("invalid report schedule")
		return
	}
	w.cron.Start()
	log.Info().Str("schedule", w.schedule).Msg("report worker started")
}

// Stop cancels the schedule and waits for a running report to finish
func (w *Worker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	log.Info().Msg("report worker stopped")
}

// Run generates and sends one report. A failure is logged and dropped;
// the next scheduled run starts fresh.
func (w *Worker) Run() {
	log.Info().Msg("generating daily report")

	listings, err := db.GetTopListings(-1)
	if err != nil {
		log.Error().Err(err).Msg("report query failed")
		return
	}
	if len(listings) == 0 {
		log.Info().Msg("no listings, skipping daily report")
		return
	}

	summary := Summarize(listings)
	if err := w.send(Subject, Body(summary)); err != nil {
		log.Error().Err(err).Msg("report email failed")
		return
	}

	log.Info().
		Int64("totalAds", summary.TotalAds).
		Int64("totalViews", summary.TotalViews).
		Msg("daily report sent")
}

// smtpSender builds the mail delivery function, or nil when unconfigured
func smtpSender(cfg *config.Config) func(subject, body string) error {
	if cfg.EmailUser == "" {
		return nil
	}

	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)
	from, to := cfg.EmailUser, cfg.EmailUser

	return func(subject, body string) error {
		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", subject)
		m.SetBody("text/plain", body)
		return dialer.DialAndSend(m)
	}
}
