package cache

import (
	"testing"
	"time"
)

func TestEntry_IsStale(t *testing.T) {
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 12 * time.Hour

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{
			name: "fresh entry",
			now:  base.Add(1 * time.Hour),
			want: false,
		},
		{
			name: "just under ttl",
			now:  base.Add(ttl - time.Second),
			want: false,
		},
		{
			name: "exactly at ttl",
			now:  base.Add(ttl),
			want: true,
		},
		{
			name: "past ttl",
			now:  base.Add(13 * time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &Entry[string]{Value: "v", PopulatedAt: base}
			if got := entry.IsStale(tt.now, ttl); got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_Age(t *testing.T) {
	base := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
	entry := &Entry[int]{Value: 1, PopulatedAt: base}

	if got := entry.Age(base.Add(90 * time.Minute)); got != 90*time.Minute {
		t.Errorf("Age() = %v, want %v", got, 90*time.Minute)
	}
}
