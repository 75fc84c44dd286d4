package models

// Session is the per-request view of who is signed in.
type Session struct {
	Authenticated bool
	CurrentUser   string
}
