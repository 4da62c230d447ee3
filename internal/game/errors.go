package game

import "errors"

// Code is the machine-readable reason of a rejected operation. The
// transport layer relays it to the client verbatim.
type Code string

const (
	CodeGameNotFound          Code = "GameNotFound"
	CodeNotYourTurn           Code = "NotYourTurn"
	CodeGameNotActive         Code = "GameNotActive"
	CodeInvalidPiece          Code = "InvalidPiece"
	CodeActivationRequiresOne Code = "ActivationRequiresOne"
	CodePieceFrozen           Code = "PieceFrozen"
	CodeNoPath                Code = "NoPath"
	CodeOwnPieceCollision     Code = "OwnPieceCollision"
	CodeDiceAlreadyRolled     Code = "DiceAlreadyRolled"
	CodeDiceNotRolled         Code = "DiceNotRolled"
	CodeMustReroll            Code = "MustReroll"
	CodeMovesStillAvailable   Code = "MovesStillAvailable"
	CodeAlreadyInQueue        Code = "AlreadyInQueue"
	CodeRoomFull              Code = "RoomFull"
)

// RuleError is a recoverable rules violation. It is returned as a value,
// never treated as an infrastructural fault.
type RuleError struct {
	Code Code
	msg  string
}

func (e *RuleError) Error() string { return e.msg }

var (
	ErrGameNotFound          = &RuleError{CodeGameNotFound, "game not found"}
	ErrNotYourTurn           = &RuleError{CodeNotYourTurn, "not your turn"}
	ErrGameNotActive         = &RuleError{CodeGameNotActive, "game is not active"}
	ErrInvalidPiece          = &RuleError{CodeInvalidPiece, "invalid piece"}
	ErrActivationRequiresOne = &RuleError{CodeActivationRequiresOne, "inactive piece requires a 1 to activate"}
	ErrPieceFrozen           = &RuleError{CodePieceFrozen, "piece is frozen"}
	ErrNoPath                = &RuleError{CodeNoPath, "cannot move that many steps"}
	ErrOwnPieceCollision     = &RuleError{CodeOwnPieceCollision, "cannot stack own pieces"}
	ErrDiceAlreadyRolled     = &RuleError{CodeDiceAlreadyRolled, "dice already rolled"}
	ErrDiceNotRolled         = &RuleError{CodeDiceNotRolled, "no dice value available"}
	ErrMustReroll            = &RuleError{CodeMustReroll, "must re-roll a repeatable value when no moves are available"}
	ErrMovesStillAvailable   = &RuleError{CodeMovesStillAvailable, "there are possible moves"}
	ErrAlreadyInQueue        = &RuleError{CodeAlreadyInQueue, "already in queue"}
	ErrRoomFull              = &RuleError{CodeRoomFull, "room is full"}
)

// AsRuleError extracts a rules violation from an error chain.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
