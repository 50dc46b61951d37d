package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Details is a free-form JSONB bag attached to an Event, mirroring the
// teacher's EmitPayload Value/Scan pattern for GORM JSONB columns.
type Details map[string]interface{}

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

func (d *Details) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("Details.Scan: value must be []byte")
	}
	return json.Unmarshal(bytes, d)
}

// Event is a generalized audit-trail row: every state transition named in
// the data model (invoice linked/voided, boleto created/approved/
// cancelled/registered, remittance emitted) is recorded here, in the same
// transaction as the transition it describes.
type Event struct {
	ID         string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	TenantID   string    `json:"tenant_id" gorm:"type:varchar(36);index"`
	EntityType string    `json:"entity_type" gorm:"type:varchar(20);index"`
	EntityID   string    `json:"entity_id" gorm:"type:varchar(36);index"`
	Action     string    `json:"action" gorm:"type:varchar(30)"`
	StatusFrom string    `json:"status_from,omitempty" gorm:"type:varchar(20)"`
	StatusTo   string    `json:"status_to,omitempty" gorm:"type:varchar(20)"`
	ActorID    string    `json:"actor_id,omitempty"`
	ActorRole  string    `json:"actor_role,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	Details    Details   `json:"details,omitempty" gorm:"type:jsonb"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewEvent builds an audit entry ready to be written inside the same
// transaction as the state transition it describes.
func NewEvent(tenantID, entityType, entityID, action, statusFrom, statusTo string) *Event {
	return &Event{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		StatusFrom: statusFrom,
		StatusTo:   statusTo,
		CreatedAt:  time.Now(),
	}
}

// WithActor attaches the audit annotation consumed from collaborators:
// request-id and remote address.
func (e *Event) WithActor(actorID, actorRole, requestID, ipAddress string) *Event {
	e.ActorID = actorID
	e.ActorRole = actorRole
	e.RequestID = requestID
	e.IPAddress = ipAddress
	return e
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}
