package credential

import "encoding/json"

// MarshalJSON flattens Claims into the credentialSubject object so the wire
// form is {"id": ..., "type": ..., "<field>": "<value>"}.
func (s Subject) MarshalJSON() ([]byte, error) {
	out := make(map[string]string, len(s.Claims)+2)
	for k, v := range s.Claims {
		out[k] = v
	}
	out["id"] = s.ID
	out["type"] = s.Type
	return json.Marshal(out)
}

// UnmarshalJSON splits the flat credentialSubject object back into the typed
// envelope plus the claim map.
func (s *Subject) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.ID = raw["id"]
	s.Type = raw["type"]
	delete(raw, "id")
	delete(raw, "type")
	s.Claims = raw
	return nil
}
