package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Charges stores a provider's fee per consultation type as free text,
// e.g. "NGN 40,000 / visit" or "Free".
type Charges struct {
	Home   string `json:"home"`
	Clinic string `json:"clinic"`
	Online string `json:"online"`
}

// Value implements the driver.Valuer interface
func (c Charges) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (c *Charges) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal Charges: unsupported type %T", value)
	}

	return json.Unmarshal(data, c)
}
