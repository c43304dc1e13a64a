package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/tasks"

	"go.mongodb.org/mongo-driver/mongo"
)

type stubBookings struct {
	confirmed []models.Booking
	listErr   error
	askedDate string
}

func (s *stubBookings) Create(ctx context.Context, b models.Booking) (string, error) { return "", nil }
func (s *stubBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, mongo.ErrNoDocuments
}
func (s *stubBookings) ListByRecipient(ctx context.Context, id string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) ListByCaregiver(ctx context.Context, id string) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubBookings) ListConfirmedOnDate(ctx context.Context, date string) ([]models.Booking, error) {
	s.askedDate = date
	return s.confirmed, s.listErr
}

func (s *stubBookings) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubBookings) SetFeeSplit(ctx context.Context, id string, fee, amount int64) error {
	return nil
}
func (s *stubBookings) Cancel(ctx context.Context, id, reason string) error { return nil }

type stubRecipients struct {
	rows map[string]*models.CareRecipient
}

func (s *stubRecipients) Create(ctx context.Context, r models.CareRecipient) (string, error) {
	return "", nil
}

func (s *stubRecipients) GetByID(ctx context.Context, id string) (*models.CareRecipient, error) {
	r, ok := s.rows[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return r, nil
}

func (s *stubRecipients) GetByProfileID(ctx context.Context, profileID string) (*models.CareRecipient, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubRecipients) Update(ctx context.Context, r models.CareRecipient) error { return nil }

type stubNotifications struct {
	reminders []string // profile ids reminders were scheduled for
}

func (s *stubNotifications) Create(ctx context.Context, n models.Notification) error { return nil }
func (s *stubNotifications) List(ctx context.Context, profileID string, limit int64) ([]models.Notification, error) {
	return nil, nil
}
func (s *stubNotifications) MarkRead(ctx context.Context, id, profileID string) error { return nil }
func (s *stubNotifications) SendPush(ctx context.Context, profileID, title, body string, data map[string]string) error {
	return nil
}

func (s *stubNotifications) ScheduleBookingReminder(ctx context.Context, booking models.Booking, profileID string) error {
	s.reminders = append(s.reminders, profileID)
	return nil
}

func TestHandleReminderSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("schedules a reminder per confirmed booking", func(t *testing.T) {
		bookings := &stubBookings{confirmed: []models.Booking{
			{ID: "bkg_1", RecipientID: "rcp_1", Status: models.BookingConfirmed},
			{ID: "bkg_2", RecipientID: "rcp_2", Status: models.BookingConfirmed},
		}}
		recipients := &stubRecipients{rows: map[string]*models.CareRecipient{
			"rcp_1": {ID: "rcp_1", ProfileID: "prof_a"},
			"rcp_2": {ID: "rcp_2", ProfileID: "prof_b"},
		}}
		notifs := &stubNotifications{}

		handler := handleReminderSweep(notifs, bookings, recipients)
		if err := handler(ctx, tasks.NewReminderSweepTask()); err != nil {
			t.Fatalf("sweep: %v", err)
		}

		if want := time.Now().Format("2006-01-02"); bookings.askedDate != want {
			t.Errorf("swept date %q, want %q", bookings.askedDate, want)
		}
		if len(notifs.reminders) != 2 || notifs.reminders[0] != "prof_a" || notifs.reminders[1] != "prof_b" {
			t.Errorf("reminders scheduled for %v, want [prof_a prof_b]", notifs.reminders)
		}
	})

	t.Run("skips bookings with unresolvable recipients", func(t *testing.T) {
		bookings := &stubBookings{confirmed: []models.Booking{
			{ID: "bkg_1", RecipientID: "rcp_gone", Status: models.BookingConfirmed},
			{ID: "bkg_2", RecipientID: "rcp_2", Status: models.BookingConfirmed},
		}}
		recipients := &stubRecipients{rows: map[string]*models.CareRecipient{
			"rcp_2": {ID: "rcp_2", ProfileID: "prof_b"},
		}}
		notifs := &stubNotifications{}

		handler := handleReminderSweep(notifs, bookings, recipients)
		if err := handler(ctx, tasks.NewReminderSweepTask()); err != nil {
			t.Fatalf("sweep: %v", err)
		}
		if len(notifs.reminders) != 1 || notifs.reminders[0] != "prof_b" {
			t.Errorf("reminders = %v, want [prof_b]", notifs.reminders)
		}
	})

	t.Run("list failure propagates for retry", func(t *testing.T) {
		listErr := errors.New("storage unavailable")
		bookings := &stubBookings{listErr: listErr}
		handler := handleReminderSweep(&stubNotifications{}, bookings, &stubRecipients{})

		if err := handler(ctx, tasks.NewReminderSweepTask()); !errors.Is(err, listErr) {
			t.Fatalf("error = %v, want wrapped list error", err)
		}
	})
}
