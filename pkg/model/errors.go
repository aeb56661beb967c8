package model

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNoCaptureTarget means no supported window nor a terminal fallback
	// display could be resolved.
	ErrNoCaptureTarget = goerr.New("no capture target")

	// ErrExtractionTimeout means OCR did not finish within the bounded timeout.
	ErrExtractionTimeout = goerr.New("extraction timed out")

	// ErrLowConfidence means extraction returned empty or unusable text.
	// Recoverable: the caller may proceed and let the model handle the image.
	ErrLowConfidence = goerr.New("low confidence extraction")

	// ErrVoiceCapture means speech recording or transcription failed.
	ErrVoiceCapture = goerr.New("voice capture failed")

	// ErrProviderTransient marks completion failures worth one retry,
	// such as rate limits or upstream unavailability.
	ErrProviderTransient = goerr.New("transient provider error")

	// ErrProviderPermanent marks completion failures surfaced immediately.
	ErrProviderPermanent = goerr.New("permanent provider error")

	// ErrSessionNotFound means the requested session id is absent from the store.
	ErrSessionNotFound = goerr.New("session not found")

	// ErrPersistence means the conversation store is unavailable. The
	// enclosing action fails cleanly with nothing partially written.
	ErrPersistence = goerr.New("persistence error")
)
