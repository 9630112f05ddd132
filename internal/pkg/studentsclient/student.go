package studentsclient

import "encoding/json"

// Student is a record owned by the external students directory.
// Fields beyond id/name/email are kept verbatim in Extra so the record
// round-trips unchanged through this service.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	Extra map[string]interface{} `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (s *Student) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	known := map[string]*string{
		"id":    &s.ID,
		"name":  &s.Name,
		"email": &s.Email,
	}
	for key, dst := range known {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return err
		}
		delete(fields, key)
	}

	if len(fields) > 0 {
		s.Extra = make(map[string]interface{}, len(fields))
		for key, raw := range fields {
			var value interface{}
			if err := json.Unmarshal(raw, &value); err != nil {
				return err
			}
			s.Extra[key] = value
		}
	}

	return nil
}

// MarshalJSON re-merges Extra with the known fields.
func (s Student) MarshalJSON() ([]byte, error) {
	merged := make(map[string]interface{}, len(s.Extra)+3)
	for key, value := range s.Extra {
		merged[key] = value
	}
	merged["id"] = s.ID
	merged["name"] = s.Name
	merged["email"] = s.Email
	return json.Marshal(merged)
}
