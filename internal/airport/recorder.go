package airport

import (
	"context"

	"github.com/Besher-Hamze/airport-management-system-backend/internal/domain"
)

type multiRecorder []Recorder

// MultiRecorder fans booking lifecycle events out to every non-nil
// recorder.
func MultiRecorder(recorders ...Recorder) Recorder {
	out := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (m multiRecorder) BookingCreated(ctx context.Context, airportID string, booking domain.Booking) {
	for _, r := range m {
		r.BookingCreated(ctx, airportID, booking)
	}
}

func (m multiRecorder) BookingCancelled(ctx context.Context, airportID string, booking domain.Booking) {
	for _, r := range m {
		r.BookingCancelled(ctx, airportID, booking)
	}
}
