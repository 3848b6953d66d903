package udm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ObjectTypeActivity is the field table name of Activity
const ObjectTypeActivity = "activity"

// ActivityType classifies an activity
type ActivityType string

const (
	ActivityTypeCall    ActivityType = "call"
	ActivityTypeEmail   ActivityType = "email"
	ActivityTypeMeeting ActivityType = "meeting"
	ActivityTypeTask    ActivityType = "task"
	ActivityTypeNote    ActivityType = "note"
)

// IsValid returns true if the activity type is known
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeCall, ActivityTypeEmail, ActivityTypeMeeting, ActivityTypeTask, ActivityTypeNote:
		return true
	default:
		return false
	}
}

// Activity is a logged interaction (call, email, meeting, task or note)
type Activity struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	CompanyID     *uuid.UUID
	ContactID     *uuid.UUID
	OpportunityID *uuid.UUID
	Type          ActivityType
	Subject       *string
	Body          *string
	Timestamp     *time.Time
	Direction     *string
	Status        *string
}

// NewActivity creates an activity with a generated ID, timestamped now
func NewActivity(tenantID uuid.UUID, activityType ActivityType) *Activity {
	now := time.Now().UTC()
	return &Activity{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Type:      activityType,
		Timestamp: &now,
	}
}

// ObjectType implements Record
func (a *Activity) ObjectType() string { return ObjectTypeActivity }

// GetField implements Record
func (a *Activity) GetField(name string) (any, bool) { return ActivityFields.Get(a, name) }

// FieldNames implements Record
func (a *Activity) FieldNames() []string { return ActivityFields.Names() }

// ActivityFields is the accessor table of Activity
var ActivityFields = NewFieldTable(ObjectTypeActivity,
	func() *Activity { return &Activity{} },
	cloneActivity,
	[]string{"activity_type"},
	map[string]Field[Activity]{
		"activity_type": {
			Get: func(a *Activity) any {
				if a.Type == "" {
					return nil
				}
				return string(a.Type)
			},
			Set: func(a *Activity, value any) error {
				s, err := toString(value)
				if err != nil {
					return err
				}
				if s == nil || !ActivityType(*s).IsValid() {
					return fmt.Errorf("%w: unknown activity type", ErrInvalidFieldValue)
				}
				a.Type = ActivityType(*s)
				return nil
			},
		},
		"activity_subject":   stringField(func(a *Activity) **string { return &a.Subject }),
		"activity_body":      stringField(func(a *Activity) **string { return &a.Body }),
		"activity_timestamp": timeField(func(a *Activity) **time.Time { return &a.Timestamp }),
		"activity_direction": stringField(func(a *Activity) **string { return &a.Direction }),
		"activity_status":    stringField(func(a *Activity) **string { return &a.Status }),
	},
)

func cloneActivity(a *Activity) *Activity {
	if a == nil {
		return nil
	}
	cp := *a
	if a.CompanyID != nil {
		id := *a.CompanyID
		cp.CompanyID = &id
	}
	if a.ContactID != nil {
		id := *a.ContactID
		cp.ContactID = &id
	}
	if a.OpportunityID != nil {
		id := *a.OpportunityID
		cp.OpportunityID = &id
	}
	cp.Subject = cloneString(a.Subject)
	cp.Body = cloneString(a.Body)
	cp.Timestamp = cloneTime(a.Timestamp)
	cp.Direction = cloneString(a.Direction)
	cp.Status = cloneString(a.Status)
	return &cp
}
