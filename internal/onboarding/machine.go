// Package onboarding owns the user lifecycle: every status change goes
// through Next.
package onboarding

import (
	"errors"
	"fmt"

	"recruitbot/internal/models"
)

type Event string

const (
	EventStarted         Event = "started"
	EventPhotoAdded      Event = "photo_added"
	EventPhotosComplete  Event = "photos_complete"
	EventAnswered        Event = "answered"
	EventSubmitted       Event = "submitted"
	EventApproved        Event = "approved"
	EventRejected        Event = "rejected"
	EventScreenshotPhoto Event = "screenshot_photo"
	EventIDVerified      Event = "id_verified"
	EventEscalated       Event = "escalated"
	EventOperatorReplied Event = "operator_replied"
	EventGroupJoined     Event = "group_joined"
)

var (
	ErrTerminal          = errors.New("user is in a terminal status")
	ErrInvalidTransition = errors.New("transition not allowed")
)

type key struct {
	from  models.Status
	event Event
}

// transitions is the whole state machine.
var transitions = map[key]models.Status{
	{models.StatusChatting, EventPhotoAdded}:     models.StatusWaitingPhotos,
	{models.StatusChatting, EventPhotosComplete}: models.StatusAskingWorkHours,
	{models.StatusChatting, EventEscalated}:      models.StatusWaitingAdmin,

	{models.StatusWaitingPhotos, EventPhotoAdded}:     models.StatusWaitingPhotos,
	{models.StatusWaitingPhotos, EventPhotosComplete}: models.StatusAskingWorkHours,
	{models.StatusWaitingPhotos, EventEscalated}:      models.StatusWaitingAdmin,

	{models.StatusAskingWorkHours, EventAnswered}:   models.StatusAskingExperience,
	{models.StatusAskingExperience, EventSubmitted}: models.StatusPendingReview,

	{models.StatusPendingReview, EventApproved}: models.StatusHelpingRegistration,
	{models.StatusPendingReview, EventRejected}: models.StatusRejected,

	{models.StatusHelpingRegistration, EventScreenshotPhoto}: models.StatusWaitingScreenshot,
	{models.StatusHelpingRegistration, EventIDVerified}:      models.StatusRegistered,
	{models.StatusHelpingRegistration, EventEscalated}:       models.StatusHelpingRegistration,

	{models.StatusWaitingScreenshot, EventScreenshotPhoto}: models.StatusWaitingScreenshot,
	{models.StatusWaitingScreenshot, EventIDVerified}:      models.StatusRegistered,
	{models.StatusWaitingScreenshot, EventEscalated}:       models.StatusWaitingScreenshot,

	{models.StatusRegistered, EventScreenshotPhoto}: models.StatusWaitingScreenshot,
	{models.StatusRegistered, EventEscalated}:       models.StatusWaitingAdmin,

	{models.StatusWaitingAdmin, EventEscalated}:       models.StatusWaitingAdmin,
	{models.StatusWaitingAdmin, EventOperatorReplied}: models.StatusChatting, // уточняет Resume
}

func init() {
	for _, s := range models.AllStatuses() {
		if s.IsTerminal() {
			continue
		}
		transitions[key{s, EventStarted}] = s
		if _, ok := transitions[key{s, EventOperatorReplied}]; !ok {
			transitions[key{s, EventOperatorReplied}] = s
		}
		if s != models.StatusWaitingAdmin {
			transitions[key{s, EventGroupJoined}] = models.StatusRegistered
		}
	}
}

// Next returns the status after event. Rejected users accept nothing.
func Next(from models.Status, event Event) (models.Status, error) {
	if from.IsTerminal() {
		return from, ErrTerminal
	}
	to, ok := transitions[key{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: %s --%s-->", ErrInvalidTransition, from, event)
	}
	return to, nil
}

// Can reports whether event is accepted in status.
func Can(from models.Status, event Event) bool {
	_, err := Next(from, event)
	return err == nil
}

// Resume picks the status after an operator answered a user who was waiting
// in waiting_admin. origin is the status the user escalated from.
func Resume(origin models.Status) models.Status {
	switch origin {
	case models.StatusRegistered, models.StatusHelpingRegistration, models.StatusWaitingScreenshot:
		return origin
	default:
		return models.StatusChatting
	}
}

// CategoryFor maps a status onto the FAQ category. Group membership is an
// additive capability: it unlocks working answers without changing status.
func CategoryFor(status models.Status, inGroup bool) models.Category {
	if inGroup {
		return models.CategoryWorking
	}
	switch status {
	case models.StatusHelpingRegistration, models.StatusWaitingScreenshot:
		return models.CategoryRegistration
	case models.StatusRegistered:
		return models.CategoryWorking
	default:
		return models.CategoryNew
	}
}

// AcceptsPhotosForScreening reports whether a photo counts toward the application.
func AcceptsPhotosForScreening(status models.Status) bool {
	return Can(status, EventPhotoAdded) || Can(status, EventPhotosComplete)
}
