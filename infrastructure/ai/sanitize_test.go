package ai

import "testing"

func TestStripMarkdownFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"empty", "", ""},
		{"whitespace only", "   \n  ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripMarkdownFences(tc.in); got != tc.want {
				t.Errorf("stripMarkdownFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeJSONNumbers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"huge literal zeroed",
			`{"duration_sec": 99999999999999999999}`,
			`{"duration_sec": 0}`,
		},
		{
			"normal numbers untouched",
			`{"duration_sec": 3750, "t0": 120}`,
			`{"duration_sec": 3750, "t0": 120}`,
		},
		{
			"numbers inside strings untouched",
			`{"id": "clip-12345678901234567890"}`,
			`{"id": "clip-12345678901234567890"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeJSONNumbers(tc.in); got != tc.want {
				t.Errorf("sanitizeJSONNumbers(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
