package payments

import (
	"context"
	"errors"
	"fmt"

	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory fakes for the repositories and the gateway. Each records enough
// state for tests to assert on writes; error fields force failure paths.

type fakeBookings struct {
	bookings     map[string]*models.Booking
	updateErr    error
	setSplitErr  error
	statusCalls  []string
	splitApplied bool
}

func newFakeBookings(bookings ...*models.Booking) *fakeBookings {
	m := make(map[string]*models.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookings{bookings: m}
}

func (f *fakeBookings) Create(ctx context.Context, b models.Booking) (string, error) {
	f.bookings[b.ID] = &b
	return b.ID, nil
}

func (f *fakeBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return b, nil
}

func (f *fakeBookings) ListByRecipient(ctx context.Context, id string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) ListByCaregiver(ctx context.Context, id string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) ListConfirmedOnDate(ctx context.Context, date string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookings) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	b.Status = status
	f.statusCalls = append(f.statusCalls, id+":"+status)
	return b, nil
}

func (f *fakeBookings) SetFeeSplit(ctx context.Context, id string, platformFeeCents, caregiverAmountCents int64) error {
	if f.setSplitErr != nil {
		return f.setSplitErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	b.PlatformFeeCents = platformFeeCents
	b.CaregiverAmountCents = caregiverAmountCents
	f.splitApplied = true
	return nil
}

func (f *fakeBookings) Cancel(ctx context.Context, id, reason string) error { return nil }

type fakePayments struct {
	byBooking  map[string]models.Payment
	byIntent   map[string]string // intent id -> booking id
	upserts    int
	upsertErr  error
	updateErr  error
	statusLogs []string
}

func newFakePayments() *fakePayments {
	return &fakePayments{
		byBooking: make(map[string]models.Payment),
		byIntent:  make(map[string]string),
	}
}

func (f *fakePayments) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	p, ok := f.byBooking[bookingID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &p, nil
}

func (f *fakePayments) UpsertByBookingID(ctx context.Context, p models.Payment) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.byBooking[p.BookingID] = p
	f.byIntent[p.StripePaymentIntentID] = p.BookingID
	return nil
}

func (f *fakePayments) UpdateStatusByIntentID(ctx context.Context, intentID, status string) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	bookingID, ok := f.byIntent[intentID]
	if !ok {
		return 0, nil
	}
	p := f.byBooking[bookingID]
	p.Status = status
	f.byBooking[bookingID] = p
	f.statusLogs = append(f.statusLogs, intentID+":"+status)
	return 1, nil
}

type fakeCaregivers struct {
	caregivers    map[string]*models.Caregiver
	setAccountErr error
	markedCalls   []string
}

func newFakeCaregivers(caregivers ...*models.Caregiver) *fakeCaregivers {
	m := make(map[string]*models.Caregiver)
	for _, c := range caregivers {
		m[c.ID] = c
	}
	return &fakeCaregivers{caregivers: m}
}

func (f *fakeCaregivers) Create(ctx context.Context, c models.Caregiver) (string, error) {
	f.caregivers[c.ID] = &c
	return c.ID, nil
}

func (f *fakeCaregivers) GetByID(ctx context.Context, id string) (*models.Caregiver, error) {
	c, ok := f.caregivers[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return c, nil
}

func (f *fakeCaregivers) GetByProfileID(ctx context.Context, profileID string) (*models.Caregiver, error) {
	for _, c := range f.caregivers {
		if c.ProfileID == profileID {
			return c, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeCaregivers) Update(ctx context.Context, c models.Caregiver) error { return nil }

func (f *fakeCaregivers) SetStripeAccountID(ctx context.Context, id, accountID string) error {
	if f.setAccountErr != nil {
		return f.setAccountErr
	}
	c, ok := f.caregivers[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	c.StripeAccountID = accountID
	return nil
}

func (f *fakeCaregivers) MarkOnboardingComplete(ctx context.Context, stripeAccountID string) (int64, error) {
	for _, c := range f.caregivers {
		if c.StripeAccountID == stripeAccountID {
			c.StripeOnboardingComplete = true
			f.markedCalls = append(f.markedCalls, stripeAccountID)
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeCaregivers) ApplyReview(ctx context.Context, id string, rating int) error {
	return nil
}

func (f *fakeCaregivers) IncTotalBookings(ctx context.Context, id string) error { return nil }

func (f *fakeCaregivers) Search(ctx context.Context, criteria caregiverRepo.SearchCriteria) ([]models.Caregiver, error) {
	return nil, nil
}

type fakeRecipients struct {
	recipients map[string]*models.CareRecipient
}

func newFakeRecipients(recipients ...*models.CareRecipient) *fakeRecipients {
	m := make(map[string]*models.CareRecipient)
	for _, r := range recipients {
		m[r.ID] = r
	}
	return &fakeRecipients{recipients: m}
}

func (f *fakeRecipients) Create(ctx context.Context, r models.CareRecipient) (string, error) {
	f.recipients[r.ID] = &r
	return r.ID, nil
}

func (f *fakeRecipients) GetByID(ctx context.Context, id string) (*models.CareRecipient, error) {
	r, ok := f.recipients[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return r, nil
}

func (f *fakeRecipients) GetByProfileID(ctx context.Context, profileID string) (*models.CareRecipient, error) {
	for _, r := range f.recipients {
		if r.ProfileID == profileID {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeRecipients) Update(ctx context.Context, r models.CareRecipient) error { return nil }

type fakeProfiles struct {
	profiles map[string]*models.Profile
}

func newFakeProfiles(profiles ...*models.Profile) *fakeProfiles {
	m := make(map[string]*models.Profile)
	for _, p := range profiles {
		m[p.ID] = p
	}
	return &fakeProfiles{profiles: m}
}

func (f *fakeProfiles) Create(ctx context.Context, p models.Profile) (string, error) {
	f.profiles[p.ID] = &p
	return p.ID, nil
}

func (f *fakeProfiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return p, nil
}

func (f *fakeProfiles) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeProfiles) Update(ctx context.Context, p models.Profile) error      { return nil }
func (f *fakeProfiles) SetFCMToken(ctx context.Context, id, token string) error { return nil }

type fakeNotifications struct {
	created   []models.Notification
	reminders []string // booking ids
	createErr error
}

func (f *fakeNotifications) Create(ctx context.Context, n models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotifications) List(ctx context.Context, profileID string, limit int64) ([]models.Notification, error) {
	return f.created, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id, profileID string) error { return nil }

func (f *fakeNotifications) SendPush(ctx context.Context, profileID, title, body string, data map[string]string) error {
	return nil
}

func (f *fakeNotifications) ScheduleBookingReminder(ctx context.Context, booking models.Booking, profileID string) error {
	f.reminders = append(f.reminders, booking.ID)
	return nil
}

type fakeGateway struct {
	customers       map[string]string // email -> id
	createdAccounts int
	createdIntents  []IntentSpec
	intentErr       error
	accountErr      error
	nextAccountID   string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{customers: make(map[string]string), nextAccountID: "acct_test_1"}
}

func (g *fakeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	return g.customers[email], nil
}

func (g *fakeGateway) CreateCustomer(ctx context.Context, spec CustomerSpec) (string, error) {
	id := fmt.Sprintf("cus_%d", len(g.customers)+1)
	g.customers[spec.Email] = id
	return id, nil
}

func (g *fakeGateway) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	return "ek_secret", nil
}

func (g *fakeGateway) CreatePaymentIntent(ctx context.Context, spec IntentSpec) (*Intent, error) {
	if g.intentErr != nil {
		return nil, g.intentErr
	}
	g.createdIntents = append(g.createdIntents, spec)
	return &Intent{
		ID:           fmt.Sprintf("pi_%d", len(g.createdIntents)),
		ClientSecret: "pi_secret",
	}, nil
}

func (g *fakeGateway) CreateExpressAccount(ctx context.Context, spec AccountSpec) (string, error) {
	if g.accountErr != nil {
		return "", g.accountErr
	}
	g.createdAccounts++
	return g.nextAccountID, nil
}

func (g *fakeGateway) CreateAccountLink(ctx context.Context, accountID, returnURL, refreshURL string) (string, error) {
	return "https://connect.stripe.com/setup/" + accountID, nil
}

type fakeDedupe struct {
	seen map[string]bool
	err  error
}

func newFakeDedupe() *fakeDedupe { return &fakeDedupe{seen: make(map[string]bool)} }

func (d *fakeDedupe) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	was := d.seen[eventID]
	d.seen[eventID] = true
	return was, nil
}

var errStorageDown = errors.New("storage unavailable")
