package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidDice         = "INVALID_DICE"
	CodeUnknownCategory     = "UNKNOWN_CATEGORY"
	CodeUnknownStrategy     = "UNKNOWN_STRATEGY"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeNotRolled           = "NOT_ROLLED"
	CodeNoRollsLeft         = "NO_ROLLS_LEFT"
	CodeInvalidDieIndex     = "INVALID_DIE_INDEX"
	CodeCategoryUsed        = "CATEGORY_USED"
	CodeSpecialCategory     = "SPECIAL_CATEGORY"
	CodeBonusUnavailable    = "BONUS_UNAVAILABLE"
	CodeNoCategorySelected  = "NO_CATEGORY_SELECTED"
	CodePlayerFinished      = "PLAYER_FINISHED"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeTableNotFound       = "TABLE_NOT_FOUND"
	CodeTableInProgress     = "TABLE_IN_PROGRESS"
	CodeTableFull           = "TABLE_FULL"
	CodeUsernameTaken       = "USERNAME_TAKEN"
	CodeGameInProgress      = "GAME_IN_PROGRESS"
	CodeGameNotStarted      = "GAME_NOT_STARTED"
	CodeGameComplete        = "GAME_COMPLETE"
	CodeGameAbandoned       = "GAME_ABANDONED"
	CodeGameNotComplete     = "GAME_NOT_COMPLETE"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodePreconditionFailed  = "PRECONDITION_FAILED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// rule maps a sentinel to its HTTP form. Rules are checked in order, so
// specific sentinels come before the kinds they wrap.
type rule struct {
	target error
	status int
	code   string
}

var rules = []rule{
	{model.ErrInvalidDice, http.StatusBadRequest, CodeInvalidDice},
	{model.ErrUnknownCategory, http.StatusBadRequest, CodeUnknownCategory},
	{model.ErrUnknownStrategy, http.StatusBadRequest, CodeUnknownStrategy},
	{model.ErrNotRolled, http.StatusConflict, CodeNotRolled},
	{model.ErrNoRollsLeft, http.StatusConflict, CodeNoRollsLeft},
	{model.ErrInvalidDieIndex, http.StatusBadRequest, CodeInvalidDieIndex},
	{model.ErrCategoryUsed, http.StatusConflict, CodeCategoryUsed},
	{model.ErrSpecialCategory, http.StatusBadRequest, CodeSpecialCategory},
	{model.ErrBonusUnavailable, http.StatusConflict, CodeBonusUnavailable},
	{model.ErrNoCategorySelected, http.StatusConflict, CodeNoCategorySelected},
	{model.ErrPlayerFinished, http.StatusConflict, CodePlayerFinished},
	{model.ErrPlayerNotFound, http.StatusNotFound, CodePlayerNotFound},
	{model.ErrTableNotFound, http.StatusNotFound, CodeTableNotFound},
	{model.ErrTableInProgress, http.StatusConflict, CodeTableInProgress},
	{model.ErrTableFull, http.StatusConflict, CodeTableFull},
	{model.ErrUsernameTaken, http.StatusConflict, CodeUsernameTaken},
	{model.ErrGameInProgress, http.StatusConflict, CodeGameInProgress},
	{model.ErrGameNotStarted, http.StatusConflict, CodeGameNotStarted},
	{model.ErrGameComplete, http.StatusConflict, CodeGameComplete},
	{model.ErrGameAbandoned, http.StatusConflict, CodeGameAbandoned},
	{model.ErrGameNotComplete, http.StatusConflict, CodeGameNotComplete},
	{model.ErrInsufficientPlayers, http.StatusConflict, CodeInsufficientPlayers},
	{model.ErrNotPlayerTurn, http.StatusForbidden, CodeNotYourTurn},

	// Remaining errors of each kind
	{model.ErrInvalidInput, http.StatusBadRequest, CodeInvalidRequest},
	{model.ErrPreconditionViolation, http.StatusConflict, CodePreconditionFailed},
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	for _, r := range rules {
		if errors.Is(err, r.target) {
			return &httpError{r.status, APIError{r.code, err.Error()}}
		}
	}

	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
