package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Field names for change tracking
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldRateType    = "rate_type"
	FieldBasePrice   = "base_price"
	FieldCurrency    = "currency"
	FieldItemType    = "item_type"
	FieldItemID      = "item_id"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
	FieldDaysOfWeek  = "days_of_week"
	FieldMinStay     = "min_stay"
	FieldMaxStay     = "max_stay"
	FieldPriority    = "priority"
	FieldActive      = "active"
)

const (
	minNameLength        = 2
	maxNameLength        = 100
	maxDescriptionLength = 500
)

// RateParams carries the raw, unvalidated attributes of a new rate.
type RateParams struct {
	Name        string
	Description string
	RateType    string
	BasePrice   *Money
	Currency    string
	ItemType    string
	ItemID      string   // empty = every item of ItemType
	StartDate   string   // YYYY-MM-DD, empty = open
	EndDate     string   // YYYY-MM-DD, empty = open
	DaysOfWeek  []string // empty = all days
	MinStay     *int
	MaxStay     *int
	Priority    int
}

// RateUpdate is a partial update. Nil fields are left unchanged.
// An empty string clears ItemID/StartDate/EndDate; a zero clears MinStay/MaxStay.
type RateUpdate struct {
	Name        *string
	Description *string
	RateType    *string
	BasePrice   *Money
	Currency    *string
	ItemType    *string
	ItemID      *string
	StartDate   *string
	EndDate     *string
	DaysOfWeek  *[]string
	MinStay     *int
	MaxStay     *int
	Priority    *int
}

// IsEmpty reports whether no field was supplied.
func (u RateUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.RateType == nil && u.BasePrice == nil &&
		u.Currency == nil && u.ItemType == nil && u.ItemID == nil && u.StartDate == nil &&
		u.EndDate == nil && u.DaysOfWeek == nil && u.MinStay == nil && u.MaxStay == nil && u.Priority == nil
}

// RateTerms are the validated, pricing-relevant attributes of a rate.
type RateTerms struct {
	Name        string
	Description string
	RateType    RateType
	BasePrice   *Money
	Currency    Currency
	ItemType    string
	ItemID      string
	StartDate   *Date
	EndDate     *Date
	DaysOfWeek  []DayOfWeek
	MinStay     *int
	MaxStay     *int
	Priority    int
}

func (t RateTerms) clone() RateTerms {
	c := t
	if t.BasePrice != nil {
		c.BasePrice = t.BasePrice.Copy()
	}
	c.DaysOfWeek = append([]DayOfWeek(nil), t.DaysOfWeek...)
	c.StartDate = copyDate(t.StartDate)
	c.EndDate = copyDate(t.EndDate)
	c.MinStay = copyInt(t.MinStay)
	c.MaxStay = copyInt(t.MaxStay)
	return c
}

// Rate is the aggregate root of the rate catalog.
type Rate struct {
	id        string
	terms     RateTerms
	active    bool
	version   int64
	createdAt time.Time
	updatedAt time.Time

	// Change tracking for optimized repository updates
	changes *ChangeTracker

	// Domain events to be published
	events []DomainEvent
}

// NewRate validates params and creates an active rate.
func NewRate(id string, params RateParams, now time.Time) (*Rate, error) {
	terms, err := parseRateParams(params)
	if err != nil {
		return nil, err
	}
	if err := terms.validate(); err != nil {
		return nil, err
	}

	r := &Rate{
		id:        id,
		terms:     terms,
		active:    true,
		version:   1,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
	r.changes.MarkDirty(FieldName, FieldDescription, FieldRateType, FieldBasePrice, FieldCurrency,
		FieldItemType, FieldItemID, FieldStartDate, FieldEndDate, FieldDaysOfWeek, FieldMinStay,
		FieldMaxStay, FieldPriority, FieldActive)

	r.recordEvent(&RateCreatedEvent{
		RateID:    r.id,
		Name:      terms.Name,
		RateType:  string(terms.RateType),
		BasePrice: terms.BasePrice.Copy(),
		Currency:  string(terms.Currency),
		ItemType:  terms.ItemType,
		ItemID:    terms.ItemID,
		Priority:  terms.Priority,
		CreatedAt: now,
	})

	return r, nil
}

// ReconstructRate reconstitutes a Rate from storage without re-running validation.
func ReconstructRate(id string, terms RateTerms, active bool, version int64, createdAt, updatedAt time.Time) *Rate {
	return &Rate{
		id:        id,
		terms:     terms,
		active:    active,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
		events:    make([]DomainEvent, 0),
	}
}

// Getters
func (r *Rate) ID() string                  { return r.id }
func (r *Rate) Name() string                { return r.terms.Name }
func (r *Rate) Description() string         { return r.terms.Description }
func (r *Rate) RateType() RateType          { return r.terms.RateType }
func (r *Rate) BasePrice() *Money           { return r.terms.BasePrice.Copy() }
func (r *Rate) Currency() Currency          { return r.terms.Currency }
func (r *Rate) ItemType() string            { return r.terms.ItemType }
func (r *Rate) ItemID() string              { return r.terms.ItemID }
func (r *Rate) StartDate() *Date            { return copyDate(r.terms.StartDate) }
func (r *Rate) EndDate() *Date              { return copyDate(r.terms.EndDate) }
func (r *Rate) DaysOfWeek() []DayOfWeek     { return append([]DayOfWeek(nil), r.terms.DaysOfWeek...) }
func (r *Rate) MinStay() *int               { return copyInt(r.terms.MinStay) }
func (r *Rate) MaxStay() *int               { return copyInt(r.terms.MaxStay) }
func (r *Rate) Priority() int               { return r.terms.Priority }
func (r *Rate) IsActive() bool              { return r.active }
func (r *Rate) Version() int64              { return r.version }
func (r *Rate) CreatedAt() time.Time        { return r.createdAt }
func (r *Rate) UpdatedAt() time.Time        { return r.updatedAt }
func (r *Rate) Terms() RateTerms            { return r.terms.clone() }
func (r *Rate) Changes() *ChangeTracker     { return r.changes }
func (r *Rate) DomainEvents() []DomainEvent { return r.events }

// Update merges the supplied fields onto the current terms and re-validates the result,
// so that e.g. a new MinStay is checked against an unchanged MaxStay.
func (r *Rate) Update(u RateUpdate, now time.Time) error {
	if u.IsEmpty() {
		return nil
	}

	next := r.terms.clone()
	var changed []string

	if u.Name != nil {
		name, err := parseName(*u.Name)
		if err != nil {
			return err
		}
		next.Name = name
		changed = append(changed, FieldName)
	}
	if u.Description != nil {
		desc, err := parseDescription(*u.Description)
		if err != nil {
			return err
		}
		next.Description = desc
		changed = append(changed, FieldDescription)
	}
	if u.RateType != nil {
		rt, err := ParseRateType(*u.RateType)
		if err != nil {
			return err
		}
		next.RateType = rt
		changed = append(changed, FieldRateType)
	}
	if u.BasePrice != nil {
		next.BasePrice = u.BasePrice.Copy()
		changed = append(changed, FieldBasePrice)
	}
	if u.Currency != nil {
		c, err := ParseCurrency(*u.Currency)
		if err != nil {
			return err
		}
		next.Currency = c
		changed = append(changed, FieldCurrency)
	}
	if u.ItemType != nil {
		next.ItemType = normalizeItemType(*u.ItemType)
		changed = append(changed, FieldItemType)
	}
	if u.ItemID != nil {
		id, err := parseItemID(*u.ItemID)
		if err != nil {
			return err
		}
		next.ItemID = id
		changed = append(changed, FieldItemID)
	}
	if u.StartDate != nil {
		d, err := parseOptionalDate(*u.StartDate)
		if err != nil {
			return err
		}
		next.StartDate = d
		changed = append(changed, FieldStartDate)
	}
	if u.EndDate != nil {
		d, err := parseOptionalDate(*u.EndDate)
		if err != nil {
			return err
		}
		next.EndDate = d
		changed = append(changed, FieldEndDate)
	}
	if u.DaysOfWeek != nil {
		days, err := parseDaysOfWeek(*u.DaysOfWeek)
		if err != nil {
			return err
		}
		next.DaysOfWeek = days
		changed = append(changed, FieldDaysOfWeek)
	}
	if u.MinStay != nil {
		next.MinStay = optionalStay(*u.MinStay)
		changed = append(changed, FieldMinStay)
	}
	if u.MaxStay != nil {
		next.MaxStay = optionalStay(*u.MaxStay)
		changed = append(changed, FieldMaxStay)
	}
	if u.Priority != nil {
		next.Priority = *u.Priority
		changed = append(changed, FieldPriority)
	}

	if err := next.validate(); err != nil {
		return err
	}

	r.terms = next
	r.updatedAt = now
	r.changes.MarkDirty(changed...)

	r.recordEvent(&RateUpdatedEvent{
		RateID:        r.id,
		ChangedFields: changed,
		UpdatedAt:     now,
	})

	return nil
}

// Activate makes the rate eligible for resolution again.
func (r *Rate) Activate(now time.Time) error {
	if r.active {
		return ErrRateAlreadyActive
	}
	r.active = true
	r.updatedAt = now
	r.changes.MarkDirty(FieldActive)

	r.recordEvent(&RateActivatedEvent{RateID: r.id, Timestamp: now})
	return nil
}

// Deactivate removes the rate from resolution. Deleting a rate is a deactivation.
func (r *Rate) Deactivate(now time.Time) error {
	if !r.active {
		return ErrRateInactive
	}
	r.active = false
	r.updatedAt = now
	r.changes.MarkDirty(FieldActive)

	r.recordEvent(&RateDeactivatedEvent{RateID: r.id, Timestamp: now})
	return nil
}

// AppliesTo reports whether the rate is an active match for the item on the given date.
func (r *Rate) AppliesTo(itemType, itemID string, date Date) bool {
	if !r.active {
		return false
	}
	if r.terms.ItemType != normalizeItemType(itemType) {
		return false
	}
	if r.terms.ItemID != "" && !strings.EqualFold(r.terms.ItemID, strings.TrimSpace(itemID)) {
		return false
	}
	if r.terms.StartDate != nil && date.Before(*r.terms.StartDate) {
		return false
	}
	if r.terms.EndDate != nil && date.After(*r.terms.EndDate) {
		return false
	}
	return MatchesDayOfWeek(date, r.terms.DaysOfWeek)
}

// AllowsStay reports whether a stay of the given number of nights is within the rate's bounds.
func (r *Rate) AllowsStay(nights int) bool {
	if r.terms.MinStay != nil && nights < *r.terms.MinStay {
		return false
	}
	if r.terms.MaxStay != nil && nights > *r.terms.MaxStay {
		return false
	}
	return true
}

// recordEvent adds a domain event to the list of events.
func (r *Rate) recordEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// RecordModifierAdded records that a modifier was attached to this rate.
func (r *Rate) RecordModifierAdded(m *RateModifier) {
	r.recordEvent(&RateModifierAddedEvent{
		RateID:       r.id,
		ModifierID:   m.ID(),
		Name:         m.Name(),
		ModifierType: string(m.Type()),
		Value:        m.Value().FloatString(4),
		AddedAt:      m.CreatedAt(),
	})
}

// RecordModifierRemoved records that a modifier was detached from this rate.
func (r *Rate) RecordModifierRemoved(modifierID string, now time.Time) {
	r.recordEvent(&RateModifierRemovedEvent{RateID: r.id, ModifierID: modifierID, RemovedAt: now})
}

// ClearEvents clears all recorded domain events (called after publishing).
func (r *Rate) ClearEvents() {
	r.events = make([]DomainEvent, 0)
}

func parseRateParams(p RateParams) (RateTerms, error) {
	var t RateTerms
	var err error

	if t.Name, err = parseName(p.Name); err != nil {
		return t, err
	}
	if t.Description, err = parseDescription(p.Description); err != nil {
		return t, err
	}
	if t.RateType, err = ParseRateType(p.RateType); err != nil {
		return t, err
	}
	if p.BasePrice == nil {
		return t, fmt.Errorf("%w: base price is required", ErrInvalidBasePrice)
	}
	t.BasePrice = p.BasePrice.Copy()
	if t.Currency, err = ParseCurrency(p.Currency); err != nil {
		return t, err
	}
	t.ItemType = normalizeItemType(p.ItemType)
	if t.ItemID, err = parseItemID(p.ItemID); err != nil {
		return t, err
	}
	if t.StartDate, err = parseOptionalDate(p.StartDate); err != nil {
		return t, err
	}
	if t.EndDate, err = parseOptionalDate(p.EndDate); err != nil {
		return t, err
	}
	if t.DaysOfWeek, err = parseDaysOfWeek(p.DaysOfWeek); err != nil {
		return t, err
	}
	t.MinStay = copyInt(p.MinStay)
	t.MaxStay = copyInt(p.MaxStay)
	t.Priority = p.Priority
	return t, nil
}

// validate runs the cross-field checks shared by create and update.
func (t RateTerms) validate() error {
	if t.ItemType == "" {
		return ErrInvalidItemType
	}
	if t.BasePrice == nil || t.BasePrice.IsNegative() {
		return ErrInvalidBasePrice
	}
	if t.StartDate != nil && t.EndDate != nil && t.StartDate.After(*t.EndDate) {
		return fmt.Errorf("%w: %s is after %s", ErrInvalidDateRange, t.StartDate, t.EndDate)
	}
	if t.MinStay != nil && *t.MinStay < 1 {
		return fmt.Errorf("%w: minimum stay must be at least 1 night", ErrInvalidStayRange)
	}
	if t.MaxStay != nil && *t.MaxStay < 1 {
		return fmt.Errorf("%w: maximum stay must be at least 1 night", ErrInvalidStayRange)
	}
	if t.MinStay != nil && t.MaxStay != nil && *t.MaxStay < *t.MinStay {
		return fmt.Errorf("%w: maximum stay %d is below minimum stay %d", ErrInvalidStayRange, *t.MaxStay, *t.MinStay)
	}
	return nil
}

func parseName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func parseDescription(value string) (string, error) {
	desc := strings.TrimSpace(value)
	if desc == "" || utf8.RuneCountInString(desc) > maxDescriptionLength {
		return "", ErrInvalidDesc
	}
	return desc, nil
}

func parseItemID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidItemID, value)
	}
	return id.String(), nil
}

// CanonicalItemID returns the stored form of an item id supplied by a pricing caller.
// Values that are not UUIDs come back unchanged and match no item-scoped rate.
func CanonicalItemID(value string) string {
	if id, err := parseItemID(value); err == nil {
		return id
	}
	return value
}

func parseOptionalDate(value string) (*Date, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseDaysOfWeek(values []string) ([]DayOfWeek, error) {
	days := make([]DayOfWeek, 0, len(values))
	seen := make(map[DayOfWeek]bool, len(values))
	for _, v := range values {
		day, err := ParseDayOfWeek(v)
		if err != nil {
			return nil, err
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	return days, nil
}

func normalizeItemType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeItemType is the canonical form item types are stored and matched in.
func NormalizeItemType(value string) string {
	return normalizeItemType(value)
}

func optionalStay(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
