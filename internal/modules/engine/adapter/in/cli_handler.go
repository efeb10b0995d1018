package in

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"focusguard/internal/modules/engine/dto"
	enginein "focusguard/internal/modules/engine/port/in"
	apperrors "focusguard/internal/platform/errors"
)

type CLIHandler struct {
	usecase enginein.Usecase
}

func NewCLIHandler(usecase enginein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Send(ctx context.Context, msg dto.Message) dto.Response {
	return h.usecase.Handle(ctx, msg)
}

func (h CLIHandler) Boot(ctx context.Context) (dto.BootOutput, error) {
	return h.usecase.Boot(ctx)
}

func (h CLIHandler) FireAlarm(ctx context.Context, name string) {
	h.usecase.HandleAlarm(ctx, name)
}

// DecodeMessage parses a raw `{"action": ...}` message.
func DecodeMessage(raw string) (dto.Message, error) {
	var msg dto.Message
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		return dto.Message{}, fmt.Errorf("%w: decode message: %v", apperrors.ErrInvalidInput, err)
	}
	if strings.TrimSpace(msg.Action) == "" {
		return dto.Message{}, fmt.Errorf("%w: message action is required", apperrors.ErrInvalidInput)
	}
	return msg, nil
}
