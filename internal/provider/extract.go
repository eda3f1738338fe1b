package provider

import (
	"bytes"
	"encoding/json"
	"strings"
)

// IDExtractor pulls a reservation id candidate out of a decoded create
// response.
type IDExtractor struct {
	Name string
	Fn   func(map[string]any) string
}

// IDExtractors is the ordered candidate list for the provider-assigned
// reservation id. Onelya responses have carried the id under several
// names over time; the first non-empty hit wins.
var IDExtractors = []IDExtractor{
	{"ReservationId", func(m map[string]any) string { return asID(m["ReservationId"]) }},
	{"Reservation.Id", func(m map[string]any) string { return asID(nested(m, "Reservation")["Id"]) }},
	{"Result.ReservationId", func(m map[string]any) string { return asID(nested(m, "Result")["ReservationId"]) }},
	{"OrderId", func(m map[string]any) string { return asID(m["OrderId"]) }},
	{"Id", func(m map[string]any) string { return asID(m["Id"]) }},
}

// ExtractReservationID runs the extractor chain over a raw JSON response.
// The second return is false when no candidate field held a value, in
// which case the caller synthesizes an id.
func ExtractReservationID(raw []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return "", false
	}

	for _, ex := range IDExtractors {
		if id := ex.Fn(m); id != "" {
			return id, true
		}
	}
	return "", false
}

func nested(m map[string]any, key string) map[string]any {
	if sub, ok := m[key].(map[string]any); ok {
		return sub
	}
	return nil
}

func asID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
