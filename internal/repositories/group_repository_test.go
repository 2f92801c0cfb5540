package repositories

import (
	"testing"

	"github.com/lib/pq"
)

func TestAppendUniqueEmail(t *testing.T) {
	tests := []struct {
		name   string
		emails pq.StringArray
		email  string
		want   int
	}{
		{name: "first invite", emails: nil, email: "a@example.com", want: 1},
		{name: "new address appended", emails: pq.StringArray{"a@example.com"}, email: "b@example.com", want: 2},
		{name: "re-invite leaves the list alone", emails: pq.StringArray{"a@example.com", "b@example.com"}, email: "b@example.com", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendUniqueEmail(tt.emails, tt.email)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			seen := make(map[string]bool, len(got))
			for _, e := range got {
				if seen[e] {
					t.Errorf("duplicate email %q in %v", e, got)
				}
				seen[e] = true
			}
			if !seen[tt.email] {
				t.Errorf("%q missing from %v", tt.email, got)
			}
		})
	}
}

// Removing a member and adding them back must not grow the invite list.
func TestAppendUniqueEmailReAddCycle(t *testing.T) {
	emails := pq.StringArray{}
	for i := 0; i < 3; i++ {
		emails = appendUniqueEmail(emails, "friend@example.com")
	}
	if len(emails) != 1 {
		t.Errorf("invite list = %v, want a single entry after repeated re-adds", emails)
	}
}
