package services

import (
	"testing"

	"github.com/yungbote/promptvault-backend/internal/types"
)

func TestDisplayNameFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *types.User
		want string
	}{
		{name: "nil user", user: nil, want: ""},
		{name: "full name preferred", user: &types.User{FullName: "Ada Lovelace", Username: "ada"}, want: "Ada Lovelace"},
		{name: "username fallback", user: &types.User{FullName: "  ", Username: "ada"}, want: "ada"},
		{name: "both blank", user: &types.User{}, want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := displayNameFor(tc.user); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestComputeInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two words", in: "Ada Lovelace", want: "AL"},
		{name: "single word", in: "ada", want: "A"},
		{name: "extra words ignored", in: "Ada Byron Lovelace", want: "AB"},
		{name: "multi-byte leading runes", in: "éva noël", want: "ÉN"},
		{name: "empty", in: "", want: "?"},
		{name: "whitespace only", in: "   ", want: "?"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := computeInitials(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
