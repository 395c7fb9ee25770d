package dataset

import (
	"encoding/json"
	"testing"
)

func TestValueString(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null, ""},
		{"integer", Number(42), "42"},
		{"decimal", Number(15.5), "15.5"},
		{"trailing zeros dropped", Number(2.50), "2.5"},
		{"date", Date("2024-06-05T00:00:00Z"), "2024-06-05T00:00:00Z"},
		{"text", Text("Yirgacheffe"), "Yirgacheffe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.String(); got != tc.want {
				t.Fatalf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValueIsNull(t *testing.T) {
	if !Null.IsNull() {
		t.Fatal("zero Value should be null")
	}
	if !Text("").IsNull() {
		t.Fatal("empty text should count as null")
	}
	if Number(0).IsNull() {
		t.Fatal("numeric zero is not null")
	}
	if Text("x").IsNull() {
		t.Fatal("non-empty text is not null")
	}
}

func TestValueMarshalJSON(t *testing.T) {
	row := map[string]Value{
		"score":  Number(86.25),
		"region": Text("Guji"),
		"etd":    Date("2024-06-05T00:00:00Z"),
		"notes":  Null,
	}
	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"etd":"2024-06-05T00:00:00Z","notes":null,"region":"Guji","score":86.25}`
	if string(b) != want {
		t.Fatalf("marshal = %s, want %s", b, want)
	}
}
