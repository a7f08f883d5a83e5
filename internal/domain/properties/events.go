package properties

import "time"

type PropertyCreated struct {
	PropertyID string
	OwnerID    string
	At         time.Time
}

func (e PropertyCreated) EventName() string     { return "property.created" }
func (e PropertyCreated) AggregateID() string   { return e.PropertyID }
func (e PropertyCreated) OccurredAt() time.Time { return e.At }

type PropertyPublishedEvent struct {
	PropertyID string
	At         time.Time
}

func (e PropertyPublishedEvent) EventName() string     { return "property.published" }
func (e PropertyPublishedEvent) AggregateID() string   { return e.PropertyID }
func (e PropertyPublishedEvent) OccurredAt() time.Time { return e.At }

type PropertySuspendedEvent struct {
	PropertyID string
	Reason     string
	At         time.Time
}

func (e PropertySuspendedEvent) EventName() string     { return "property.suspended" }
func (e PropertySuspendedEvent) AggregateID() string   { return e.PropertyID }
func (e PropertySuspendedEvent) OccurredAt() time.Time { return e.At }

type PropertyUpdated struct {
	PropertyID string
	At         time.Time
}

func (e PropertyUpdated) EventName() string     { return "property.updated" }
func (e PropertyUpdated) AggregateID() string   { return e.PropertyID }
func (e PropertyUpdated) OccurredAt() time.Time { return e.At }
