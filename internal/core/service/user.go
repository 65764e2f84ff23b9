package service

import (
	"context"
	"errors"

	"crmchat/internal/core/domain"
	"crmchat/internal/core/port"
)

type UserService struct {
	repo      port.UserRepository
	telemetry port.Telemetry
}

func NewUserService(repo port.UserRepository, telemetry port.Telemetry) *UserService {
	return &UserService{repo: repo, telemetry: probeOrNoOp(telemetry)}
}

// Login returns the user registered under phone, registering it first when
// the phone is unknown. Repeated logins never change the stored row.
func (us *UserService) Login(ctx context.Context, phone string) (user domain.User, err error) {
	ctx, done := startSpan(ctx, us.telemetry, "user", "Login", map[string]interface{}{"user.phone": phone})
	defer done(&err)

	if phone == "" {
		return domain.User{}, domain.NewValidationError("phone", "phone is required")
	}

	user, err = us.repo.GetByPhone(ctx, phone)

	if err == nil {
		return user, nil
	}

	if !errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, err
	}

	user, err = us.repo.Create(ctx, phone)
	if err != nil {
		return domain.User{}, err
	}

	us.telemetry.RecordBusinessEvent(ctx, "user.registered", "user", user.Phone, nil)

	return user, nil
}

func (us *UserService) List(ctx context.Context) (users []domain.User, err error) {
	ctx, done := startSpan(ctx, us.telemetry, "user", "List", nil)
	defer done(&err)

	return us.repo.GetAll(ctx)
}
