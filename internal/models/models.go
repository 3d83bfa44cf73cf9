package models

// PostStatus is the lifecycle kind of an item post.
type PostStatus string

const (
	PostLost  PostStatus = "lost"
	PostFound PostStatus = "found"
)

// ResolutionStatus tracks whether an item post has been handled.
type ResolutionStatus string

const (
	ResolutionActive     ResolutionStatus = "Active"
	ResolutionResolved   ResolutionStatus = "Resolved"
	ResolutionUnresolved ResolutionStatus = "Unresolved"
)

// ReportStatus tracks the moderation state of a report.
type ReportStatus string

const (
	ReportPending  ReportStatus = "Pending"
	ReportResolved ReportStatus = "Resolved"
)

// ReportTypeItemClaim marks a report filed to claim an item rather than to
// flag abuse. Resolving it never awards points to the reporter.
const ReportTypeItemClaim = "Item Claim"

// StatusResponse is the generic success/failure payload for mutating calls.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
