package models

import "testing"

// TestUserDisplayName verifies the fallback chain for the name shown next
// to listings, bids, and comments.
func TestUserDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		firstName string
		lastName  string
		username  string
		want      string
	}{
		{name: "both names", firstName: "ada", lastName: "lovelace", username: "ada84", want: "Ada Lovelace"},
		{name: "first name only", firstName: "ada", username: "ada84", want: "Ada"},
		{name: "last name only", lastName: "lovelace", username: "ada84", want: "Lovelace"},
		{name: "username fallback", username: "ada84", want: "ada84"},
		{name: "already capitalized", firstName: "Ada", lastName: "Lovelace", username: "ada84", want: "Ada Lovelace"},
		{name: "all caps input", firstName: "ADA", lastName: "LOVELACE", username: "ada84", want: "Ada Lovelace"},
		{name: "unicode first rune", firstName: "élodie", username: "el", want: "Élodie"},
		{name: "empty everything", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{
				FirstName: tt.firstName,
				LastName:  tt.lastName,
				Username:  tt.username,
			}
			if got := u.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "A"},
		{"ada", "Ada"},
		{"ADA", "Ada"},
		{"aDa", "Ada"},
	}

	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
