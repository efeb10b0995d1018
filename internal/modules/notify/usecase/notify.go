package usecase

import (
	"context"

	"focusguard/internal/modules/notify/dto"
	notifyin "focusguard/internal/modules/notify/port/in"
	"focusguard/internal/modules/notify/service"
)

type Interactor struct {
	svc *service.NotifyService
}

func NewInteractor(svc *service.NotifyService) notifyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Notify(ctx context.Context, notification dto.Notification) error {
	return i.svc.Notify(ctx, notification)
}

func (i *Interactor) List(ctx context.Context) ([]dto.NotifierInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}
