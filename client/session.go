package client

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// User mirrors the backend's user payload, as much of it as the views need.
type User struct {
	ID          uint   `json:"ID"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
	HospitalID  *uint  `json:"hospital_id,omitempty"`
	WorkerID    *uint  `json:"worker_id,omitempty"`
}

// Session is the cached identity driving role-gated rendering. Verified is
// false whenever the cached user has not been confirmed by the server since
// process start, so views can mark it instead of silently trusting it.
type Session struct {
	User          *User `json:"user"`
	Authenticated bool  `json:"authenticated"`
	Verified      bool  `json:"-"`
}

// loadSession reads the cached session from disk. A missing or corrupt cache
// yields an empty, unauthenticated session.
func loadSession(path string) Session {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}
	}
	s.Verified = false
	return s
}

func saveSession(path string, s Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Debounce wraps fn so that rapid successive calls collapse into one
// invocation with the last value, after the given quiet period. Search boxes
// use it with ~300ms.
func Debounce(d time.Duration, fn func(string)) func(string) {
	var mu sync.Mutex
	var timer *time.Timer

	return func(value string) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			fn(value)
		})
	}
}
