package models

import "fmt"

// Status is the onboarding lifecycle stage of a user.
type Status string

const (
	StatusChatting            Status = "chatting"
	StatusWaitingPhotos       Status = "waiting_photos"
	StatusAskingWorkHours     Status = "asking_work_hours"
	StatusAskingExperience    Status = "asking_experience"
	StatusPendingReview       Status = "pending_review"
	StatusHelpingRegistration Status = "helping_registration"
	StatusWaitingScreenshot   Status = "waiting_screenshot"
	StatusRegistered          Status = "registered"
	StatusRejected            Status = "rejected"
	StatusWaitingAdmin        Status = "waiting_admin"
)

var allStatuses = []Status{
	StatusChatting,
	StatusWaitingPhotos,
	StatusAskingWorkHours,
	StatusAskingExperience,
	StatusPendingReview,
	StatusHelpingRegistration,
	StatusWaitingScreenshot,
	StatusRegistered,
	StatusRejected,
	StatusWaitingAdmin,
}

// AllStatuses returns the closed status set in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

func (s Status) IsValid() bool {
	for _, v := range allStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusRejected
}

// PassedScreening is true once an operator has approved the application.
func (s Status) PassedScreening() bool {
	switch s {
	case StatusHelpingRegistration, StatusWaitingScreenshot, StatusRegistered:
		return true
	}
	return false
}

// InRegistrationPhase covers every status before the user is fully registered.
func (s Status) InRegistrationPhase() bool {
	switch s {
	case StatusChatting, StatusWaitingPhotos, StatusAskingWorkHours, StatusAskingExperience,
		StatusPendingReview, StatusHelpingRegistration, StatusWaitingScreenshot:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// ParseStatus converts a stored string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// ApplicationStatus is the human decision on a screening application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// Category scopes knowledge retrieval by onboarding phase.
type Category string

const (
	CategoryNew          Category = "new"
	CategoryRegistration Category = "registration"
	CategoryWorking      Category = "working"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryNew, CategoryRegistration, CategoryWorking:
		return true
	}
	return false
}

// Role of a conversation message author.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Source tells who produced a learned answer.
type Source string

const (
	SourceAuto  Source = "auto"
	SourceAdmin Source = "admin"
)

// MaterialKind is the modality of a training material.
type MaterialKind string

const (
	MaterialText  MaterialKind = "text"
	MaterialAudio MaterialKind = "audio"
	MaterialVideo MaterialKind = "video"
)

func (k MaterialKind) IsValid() bool {
	switch k {
	case MaterialText, MaterialAudio, MaterialVideo:
		return true
	}
	return false
}
