package domain

import (
	"testing"
	"time"
)

func TestPendingReservation(t *testing.T) {
	now := time.Now()
	fresh := now.Add(-10 * 24 * time.Hour)
	stale := now.Add(-31 * 24 * time.Hour)

	cases := []struct {
		name string
		item CustomerWishlistItem
		want bool
	}{
		{"never requested", CustomerWishlistItem{}, false},
		{"requested recently", CustomerWishlistItem{RequestedAt: &fresh}, true},
		{"requested too long ago", CustomerWishlistItem{RequestedAt: &stale}, false},
		{"already picked up", CustomerWishlistItem{RequestedAt: &fresh, PickedUp: true}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.PendingReservation(now); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
