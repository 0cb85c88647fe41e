package game

import (
	"context"
	"fmt"
)

// SetReminderPrefs stores the contact number and the reminders toggle on
// the user row.
func (s *Store) SetReminderPrefs(ctx context.Context, phoneNumber string, active bool) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if active && phoneNumber == "" {
		return ValidationError{Field: "phone number", Reason: "required when reminders are active"}
	}
	if err := s.remote.UpdateUserPrefs(ctx, s.session.UserID, phoneNumber, active); err != nil {
		// Keep the requested payload around; the retry must send what the
		// user asked for, not whatever the remote row still holds.
		s.pendingPrefs = &prefsUpdate{PhoneNumber: phoneNumber, Active: active}
		s.markDirty(dirtyPrefs)
		return SyncError{Op: "prefs update", Err: err}
	}
	// A successful write supersedes any retry still queued from before.
	s.pendingPrefs = nil
	delete(s.dirty, dirtyPrefs)
	s.snapshotBestEffort()
	return nil
}

// SendReminder pushes the fixed motivational message to the user's
// contact address. A send failure is reported but changes nothing; the
// prefs stay saved.
func (s *Store) SendReminder(ctx context.Context) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	if s.notifier == nil {
		return fmt.Errorf("no notifier configured")
	}
	u, err := s.remote.GetUser(ctx, s.session.UserID)
	if err != nil {
		return fmt.Errorf("load reminder prefs: %w", err)
	}
	if u.PhoneNumber == "" || !u.RemindersActive {
		return ValidationError{Field: "reminders", Reason: "not configured or inactive"}
	}
	return s.notifier.Send(ctx, u.PhoneNumber)
}
