package provider

import "testing"

func TestExtractReservationIDOrder(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"top-level ReservationId", `{"ReservationId":"R-1","OrderId":99}`, "R-1"},
		{"nested Reservation.Id", `{"Reservation":{"Id":"R-2"},"Id":"ignored"}`, "R-2"},
		{"Result.ReservationId", `{"Result":{"ReservationId":"R-3"}}`, "R-3"},
		{"OrderId wins over Id", `{"OrderId":12345,"Id":"ignored"}`, "12345"},
		{"plain Id", `{"Id":"R-5"}`, "R-5"},
	}

	for _, tc := range cases {
		got, ok := ExtractReservationID([]byte(tc.raw))
		if !ok {
			t.Fatalf("%s: no id extracted", tc.name)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestExtractReservationIDNumbersStayExact(t *testing.T) {
	got, ok := ExtractReservationID([]byte(`{"OrderId":9007199254740993}`))
	if !ok || got != "9007199254740993" {
		t.Fatalf("large numeric id mangled: %q (ok=%v)", got, ok)
	}
}

func TestExtractReservationIDMisses(t *testing.T) {
	for _, raw := range []string{`{}`, `{"Amount":100}`, `not json`, `{"ReservationId":""}`} {
		if got, ok := ExtractReservationID([]byte(raw)); ok {
			t.Fatalf("expected miss for %q, got %q", raw, got)
		}
	}
}
