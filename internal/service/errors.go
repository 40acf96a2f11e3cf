package service

import (
	"net/http"

	"notehub-be/pkg/apperror"
)

var (
	ErrLessonRequired    = apperror.BadRequest("Lesson topic is required")
	ErrAIRateLimited     = apperror.New(http.StatusTooManyRequests, "Rate limits exceeded, please try again later.")
	ErrAIQuotaExceeded   = apperror.New(http.StatusPaymentRequired, "Payment required, please add funds to your AI workspace.")
	ErrAIGateway         = apperror.New(http.StatusInternalServerError, "AI gateway error")
	ErrAINoResponse      = apperror.New(http.StatusInternalServerError, "No response from AI")
	ErrAIInvalidResponse = apperror.New(http.StatusInternalServerError, "Invalid AI response format")
	ErrAINotConfigured   = apperror.New(http.StatusInternalServerError, "AI_GATEWAY_API_KEY is not configured")

	ErrNoteNotFound      = apperror.NotFound("Note not found")
	ErrTitleRequired     = apperror.BadRequest("Title cannot be empty")
	ErrSubjectRequired   = apperror.BadRequest("Subject cannot be empty")
	ErrClassNameRequired = apperror.BadRequest("Class name cannot be empty")
	ErrNotNoteOwner      = apperror.Forbidden("Only the owner can change this note")
	ErrRateOwnNote       = apperror.Forbidden("You cannot rate your own note")
	ErrProfileNotFound   = apperror.NotFound("Profile not found")
	ErrSchoolNotFound    = apperror.BadRequest("School not found")
	ErrUsernameTaken     = apperror.Conflict("Username is already taken")
)
