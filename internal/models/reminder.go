package models

// Reminder represents a reminder owned by a user.
//
// DueDate is kept as the string the client supplied. Upcoming queries compare
// it lexicographically against an ISO-8601 instant; due-today queries compare
// it for exact equality with a YYYY-MM-DD label. Both comparisons rely on the
// fixed-width zero-padded ISO formatting, so the value is never parsed into a
// time.Time.
type Reminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	CreatedBy   string `json:"createdBy"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// ReminderUpdate carries a partial update. Nil fields are left untouched.
type ReminderUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
}
