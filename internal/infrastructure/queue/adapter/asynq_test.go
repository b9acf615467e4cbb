package adapter

import "testing"

func TestParseQueueWeights(t *testing.T) {
	cases := []struct {
		in   string
		want map[string]int
	}{
		{"critical=6,default=3,low=1", map[string]int{"critical": 6, "default": 3, "low": 1}},
		{"collab", map[string]int{"collab": 1}},
		{" collab = 2 , default ", map[string]int{"collab": 2, "default": 1}},
		{"collab=0", map[string]int{"collab": 1}}, // non-positive weight falls back to 1
		{"", map[string]int{}},
		{",,", map[string]int{}},
	}

	for _, tc := range cases {
		got := parseQueueWeights(tc.in)
		if len(got) != len(tc.want) {
			t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
		}
		for k, w := range tc.want {
			if got[k] != w {
				t.Fatalf("%q: got[%s] = %d, want %d", tc.in, k, got[k], w)
			}
		}
	}
}
