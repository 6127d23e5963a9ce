package service

import (
	"errors"
	"testing"
	"time"

	"github.com/placeprep/placeprep-backend/internal/model"
)

func TestCheckWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)
	test := &model.ScheduledTest{StartTime: start, EndTime: end}

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before window", time.Date(2026, 3, 10, 9, 59, 0, 0, time.UTC), ErrNotYetOpen},
		{"exactly at start", start, nil},
		{"inside window", time.Date(2026, 3, 10, 10, 5, 0, 0, time.UTC), nil},
		{"last admissible instant", end.Add(-time.Nanosecond), nil},
		{"exactly at end", end, ErrWindowClosed},
		{"after window", time.Date(2026, 3, 10, 10, 31, 0, 0, time.UTC), ErrWindowClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkWindow(test, tt.now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkWindow(%v) = %v, want %v", tt.now, err, tt.wantErr)
			}
		})
	}
}
