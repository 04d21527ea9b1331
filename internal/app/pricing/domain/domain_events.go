package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// RateCreatedEvent is emitted when a rate is created.
type RateCreatedEvent struct {
	RateID    string
	Name      string
	RateType  string
	BasePrice *Money
	Currency  string
	ItemType  string
	ItemID    string
	Priority  int
	CreatedAt time.Time
}

func (e *RateCreatedEvent) EventType() string   { return "rate.created" }
func (e *RateCreatedEvent) AggregateID() string { return e.RateID }

// RateUpdatedEvent is emitted when rate terms change.
type RateUpdatedEvent struct {
	RateID        string
	ChangedFields []string
	UpdatedAt     time.Time
}

func (e *RateUpdatedEvent) EventType() string   { return "rate.updated" }
func (e *RateUpdatedEvent) AggregateID() string { return e.RateID }

// RateActivatedEvent is emitted when a rate is activated.
type RateActivatedEvent struct {
	RateID    string
	Timestamp time.Time
}

func (e *RateActivatedEvent) EventType() string   { return "rate.activated" }
func (e *RateActivatedEvent) AggregateID() string { return e.RateID }

// RateDeactivatedEvent is emitted when a rate is deactivated or soft-deleted.
type RateDeactivatedEvent struct {
	RateID    string
	Timestamp time.Time
}

func (e *RateDeactivatedEvent) EventType() string   { return "rate.deactivated" }
func (e *RateDeactivatedEvent) AggregateID() string { return e.RateID }

// RateModifierAddedEvent is emitted when a modifier is attached to a rate.
type RateModifierAddedEvent struct {
	RateID       string
	ModifierID   string
	Name         string
	ModifierType string
	Value        string
	AddedAt      time.Time
}

func (e *RateModifierAddedEvent) EventType() string   { return "rate.modifier.added" }
func (e *RateModifierAddedEvent) AggregateID() string { return e.RateID }

// RateModifierRemovedEvent is emitted when a modifier is detached from a rate.
type RateModifierRemovedEvent struct {
	RateID     string
	ModifierID string
	RemovedAt  time.Time
}

func (e *RateModifierRemovedEvent) EventType() string   { return "rate.modifier.removed" }
func (e *RateModifierRemovedEvent) AggregateID() string { return e.RateID }

// SeasonalRuleSavedEvent is emitted when a seasonal rule is created or replaced.
type SeasonalRuleSavedEvent struct {
	RuleID     string
	Name       string
	Start      string
	End        string
	Multiplier string
	Priority   int
	Active     bool
	SavedAt    time.Time
}

func (e *SeasonalRuleSavedEvent) EventType() string   { return "seasonal_rule.saved" }
func (e *SeasonalRuleSavedEvent) AggregateID() string { return e.RuleID }

// SeasonalRuleDeletedEvent is emitted when a seasonal rule is removed.
type SeasonalRuleDeletedEvent struct {
	RuleID    string
	DeletedAt time.Time
}

func (e *SeasonalRuleDeletedEvent) EventType() string   { return "seasonal_rule.deleted" }
func (e *SeasonalRuleDeletedEvent) AggregateID() string { return e.RuleID }

// DynamicConfigReplacedEvent is emitted when a pricing domain's dynamic config is replaced.
type DynamicConfigReplacedEvent struct {
	Domain     string
	Enabled    bool
	ReplacedAt time.Time
}

func (e *DynamicConfigReplacedEvent) EventType() string   { return "dynamic_config.replaced" }
func (e *DynamicConfigReplacedEvent) AggregateID() string { return e.Domain }
