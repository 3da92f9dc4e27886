package delete_partner_config

import "context"

type ConfigService interface {
	Delete(ctx context.Context, partnerID, configID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
