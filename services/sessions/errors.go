package sessions

import "errors"

// Domain errors. All of them are user-facing: the controllers translate
// them into an HTTP status and a message for the invoking user, nothing
// here logs or retries (see controllers/errors mapping).
var (
	// ErrNoSessionAvailable means there is no future session at all.
	ErrNoSessionAvailable = errors.New("there is no upcoming session, create one with /create")

	// ErrInvalidIndex means the requested index is < 1.
	ErrInvalidIndex = errors.New("the session number must be at least 1")

	// ErrIndexOutOfRange means there are future sessions, just not that many.
	ErrIndexOutOfRange = errors.New("there is no such session, check /list for the upcoming ones")

	// ErrInvalidDate means the day/hour arguments could not be parsed.
	ErrInvalidDate = errors.New("invalid day or hour, use e.g. day=15 start=18.30 end=23")

	// ErrInvalidCapacity means a negative number of places was given, or an
	// update tried to lower places below the current number of participants.
	ErrInvalidCapacity = errors.New("invalid number of places")

	ErrUserIsAlreadyHost        = errors.New("you are trying to join your own session")
	ErrUserIsAlreadyParticipant = errors.New("you already joined this session")
	ErrSessionIsFull            = errors.New("there is no place left in this session")
	ErrUserIsHost               = errors.New("you are the host, use /delete to cancel your session")
	ErrUserIsNotHost            = errors.New("only the host can update or delete a session")
	ErrUserIsNotParticipant     = errors.New("you are not taking part in this session")
	ErrTooManyEquipment         = errors.New("you cannot bring that much equipment")

	// ErrSessionNotFound means a point lookup by id found nothing.
	ErrSessionNotFound = errors.New("this session does not exist anymore")

	// ErrConcurrentModification means a conditional write lost the race
	// against another request mutating the same session.
	ErrConcurrentModification = errors.New("the session changed while processing your request, try again")
)
