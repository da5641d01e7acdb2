package cast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Sk3pz/angler-bot-v2/internal/session"
)

var (
	ErrAlreadyFishing     = session.ErrAlreadyFishing
	ErrServiceUnavailable = errors.New("fishing service unavailable")
	ErrNotFishing         = errors.New("not fishing")
)

// Generation stages used as code prefixes.
const (
	StageSinker = "SINKER_FTG"
	StageFish   = "FISH_FTG"
)

// GenerationError aborts a cast whose depth or fish could not be generated.
// Code is shown to the player and logged so the two can be matched up.
type GenerationError struct {
	Code  string
	Stage string
	Err   error
}

func newGenerationError(stage string, err error) *GenerationError {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &GenerationError{
		Code:  stage + "-" + strings.ToUpper(id[:8]),
		Stage: stage,
		Err:   err,
	}
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Code, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
