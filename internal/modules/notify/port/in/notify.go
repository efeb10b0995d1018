package in

import (
	"context"

	"focusguard/internal/modules/notify/dto"
)

type Usecase interface {
	// Notify is fire-and-forget: only an invalid notification is an error.
	Notify(ctx context.Context, notification dto.Notification) error
	List(ctx context.Context) ([]dto.NotifierInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
}
