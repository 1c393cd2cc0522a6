package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AudienceSegment is a snapshot of a catalog segment taken at selection time.
// Reach and CPM are frozen values: they do not update after selection.
type AudienceSegment struct {
	ID          string  `json:"id" example:"seg_travel_intenders"`
	Name        string  `json:"name" example:"Travel Intenders"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty" example:"Interest > Travel"`
	Reach       int64   `json:"reach" example:"2400000"`
	CPM         float64 `json:"cpm" example:"3.25"`
}

// AudienceList is a jsonb column holding the ordered audience snapshot of a
// campaign or request.
type AudienceList []AudienceSegment

// Value implements driver.Valuer for jsonb storage
func (l AudienceList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(AudienceList{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for jsonb retrieval
func (l *AudienceList) Scan(value interface{}) error {
	if value == nil {
		*l = AudienceList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for AudienceList scan: %T", value)
	}
	return json.Unmarshal(data, l)
}

// Contains reports whether the list already holds the given segment id
func (l AudienceList) Contains(id string) bool {
	for _, seg := range l {
		if seg.ID == id {
			return true
		}
	}
	return false
}
