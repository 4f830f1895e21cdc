package auth

import (
	"context"

	"github.com/bookswap/bookswap/pkg/models"
	"github.com/robinjoseph08/golib/logger"
)

// There's no mailer, so account lifecycle events (including the tokens a user
// needs to act on) are written to the log.
const (
	eventRegistered      = "user registered"
	eventVerifyRequested = "verification requested"
	eventVerified        = "user verified"
	eventForgotPassword  = "password reset requested"
	eventPasswordReset   = "password reset"
)

func logEvent(ctx context.Context, event string, user *models.User, data logger.Data) {
	if data == nil {
		data = logger.Data{}
	}
	data["user_id"] = user.ID.String()
	data["email"] = user.Email
	logger.FromContext(ctx).Info(event, data)
}
