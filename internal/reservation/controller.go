package reservation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/littlelemon/tablebook/internal/booking"
)

type Status int

const (
	Editing Status = iota
	Submitting
	Submitted
)

func (s Status) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

const (
	SubmitFailedMessage = "Unable to complete your reservation. Please try again."
	slotGoneMessage     = "Selected time is no longer available"
	slotInvalidMessage  = "Please select an available time"
)

var (
	ErrInvalid          = errors.New("reservation: form has invalid fields")
	ErrSubmitInProgress = errors.New("reservation: submit already in progress")
	ErrAlreadySubmitted = errors.New("reservation: already submitted")
	ErrSubmitFailed     = errors.New("reservation: submission failed")
	ErrUnknownField     = errors.New("reservation: unknown field")
)

// Confirmation is handed to the navigate callback after a successful submit.
type Confirmation struct {
	Reference   uuid.UUID
	Reservation booking.Reservation
}

// View is a point-in-time copy of the controller state for rendering.
type View struct {
	Values       Values
	Errors       Errors
	Slots        []string
	Status       Status
	Submitting   bool
	SubmitError  string
	Valid        bool
	Confirmation *Confirmation
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithRules(r Rules) Option {
	return func(c *Controller) { c.rules = r }
}

// WithNavigate registers the callback fired once per successful submit.
func WithNavigate(fn func(Confirmation)) Option {
	return func(c *Controller) { c.onNavigate = fn }
}

// WithSlotsChanged registers a callback fired whenever a slot list is applied.
func WithSlotsChanged(fn func([]string)) Option {
	return func(c *Controller) { c.onSlots = fn }
}

// Controller owns a single reservation form: values, per-field errors, the
// available slot list and the submit state machine.
type Controller struct {
	svc        booking.Service
	rules      Rules
	now        func() time.Time
	log        *slog.Logger
	onNavigate func(Confirmation)
	onSlots    func([]string)

	mu           sync.Mutex
	values       Values
	errs         Errors
	slots        []string
	status       Status
	submitErr    string
	confirmation *Confirmation

	// seq identifies the latest slot request; older results are dropped.
	seq         uint64
	cancelFetch context.CancelFunc
	wg          sync.WaitGroup
}

func New(svc booking.Service, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		rules:  DefaultRules(),
		now:    time.Now,
		values: defaultValues(),
		errs:   Errors{},
		slots:  []string{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Mount loads the slots for today, as the form shows on first render.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchSlotsLocked(ctx, startOfDay(c.now()))
}

// Set updates a field and revalidates it. Changing the date starts a slot
// fetch for the new day in the background.
func (c *Controller) Set(ctx context.Context, f Field, value string) error {
	if _, ok := ParseField(string(f)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editableLocked(); err != nil {
		return err
	}

	if f == SpecialRequests {
		value = truncateRunes(value, MaxSpecialRequests)
	}
	c.values[f] = value
	c.validateLocked(f)

	if f == Date {
		d, err := ParseDate(value, c.now().Location())
		if err != nil {
			c.supersedeLocked()
			c.applySlotsLocked([]string{})
			return nil
		}
		c.fetchSlotsLocked(ctx, d)
	}
	return nil
}

// Blur revalidates a field without changing it.
func (c *Controller) Blur(f Field) error {
	if _, ok := ParseField(string(f)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validateLocked(f)
	return nil
}

// Wait blocks until every slot request issued so far has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := View{
		Values:      c.values.clone(),
		Errors:      c.errs.clone(),
		Slots:       append([]string(nil), c.slots...),
		Status:      c.status,
		Submitting:  c.status == Submitting,
		SubmitError: c.submitErr,
		Valid:       c.validLocked(),
	}
	if c.confirmation != nil {
		conf := *c.confirmation
		v.Confirmation = &conf
	}
	return v
}

// Submit validates the whole form and, when it is clean, hands it to the
// booking service. On failure the form returns to Editing with its values
// intact and a form-level message set.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if err := c.editableLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	for _, f := range Fields {
		c.validateLocked(f)
	}
	if !c.validLocked() {
		c.mu.Unlock()
		return ErrInvalid
	}
	res := c.reservationLocked()
	c.status = Submitting
	c.submitErr = ""
	c.mu.Unlock()

	log := c.log.With(slog.String("date", res.Date.Format(booking.DateLayout)), slog.String("time", res.Time))
	ok, err := c.svc.SubmitReservation(ctx, res)
	if err == nil && !ok {
		err = booking.ErrSubmitRejected
	}

	c.mu.Lock()
	if err != nil {
		c.status = Editing
		c.submitErr = SubmitFailedMessage
		c.mu.Unlock()
		log.Warn("reservation submit failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	conf := Confirmation{Reference: uuid.New(), Reservation: res}
	c.status = Submitted
	c.confirmation = &conf
	nav := c.onNavigate
	c.mu.Unlock()

	log.Info("reservation confirmed", slog.String("reference", conf.Reference.String()))
	if nav != nil {
		nav(conf)
	}
	return nil
}

func (c *Controller) editableLocked() error {
	switch c.status {
	case Submitting:
		return ErrSubmitInProgress
	case Submitted:
		return ErrAlreadySubmitted
	}
	return nil
}

func (c *Controller) validateLocked(f Field) {
	msg := c.rules.Check(f, c.values[f], c.now())
	if msg == "" && f == Time && !booking.Contains(c.slots, c.values[Time]) {
		msg = slotInvalidMessage
	}
	if msg == "" {
		delete(c.errs, f)
		return
	}
	c.errs[f] = msg
}

func (c *Controller) validLocked() bool {
	if len(c.errs) > 0 {
		return false
	}
	for _, f := range Required {
		if strings.TrimSpace(c.values[f]) == "" {
			return false
		}
	}
	return true
}

func (c *Controller) reservationLocked() booking.Reservation {
	d, _ := ParseDate(c.values[Date], c.now().Location())
	guests, _ := strconv.Atoi(strings.TrimSpace(c.values[Guests]))
	return booking.Reservation{
		Name:            strings.TrimSpace(c.values[Name]),
		Email:           strings.TrimSpace(c.values[Email]),
		Phone:           strings.TrimSpace(c.values[Phone]),
		Date:            d,
		Time:            c.values[Time],
		Guests:          guests,
		Occasion:        c.values[Occasion],
		SpecialRequests: c.values[SpecialRequests],
	}
}

func (c *Controller) supersedeLocked() uint64 {
	c.seq++
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
	return c.seq
}

// fetchSlotsLocked drops the current slot list until the new date's slots
// arrive, so a time picked for another date cannot be submitted meanwhile.
func (c *Controller) fetchSlotsLocked(ctx context.Context, date time.Time) {
	seq := c.supersedeLocked()
	fctx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.slots = []string{}
	if c.status == Editing && c.values[Time] != "" {
		c.validateLocked(Time)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		slots, err := c.svc.ListAvailableTimes(fctx, date)

		c.mu.Lock()
		if seq != c.seq {
			c.mu.Unlock()
			c.log.Debug("discarding superseded slot response", slog.String("date", date.Format(booking.DateLayout)))
			return
		}
		c.cancelFetch = nil
		if err != nil {
			c.log.Warn("slot fetch failed", slog.String("date", date.Format(booking.DateLayout)), slog.String("error", err.Error()))
			slots = nil
		}
		applied := c.applySlotsLocked(booking.Sanitize(slots))
		notify := c.onSlots
		c.mu.Unlock()

		if notify != nil {
			notify(applied)
		}
	}()
}

// applySlotsLocked replaces the slot list. While editing, a selected time
// that is not in the new list is cleared; a form that is submitting or
// submitted keeps its values.
func (c *Controller) applySlotsLocked(slots []string) []string {
	c.slots = slots
	if c.status != Editing {
		return append([]string(nil), slots...)
	}
	if t := c.values[Time]; t != "" {
		if booking.Contains(slots, t) {
			c.validateLocked(Time)
		} else {
			c.values[Time] = ""
			c.errs[Time] = slotGoneMessage
		}
	}
	return append([]string(nil), slots...)
}
