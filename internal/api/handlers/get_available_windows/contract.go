package get_available_windows

import (
	"context"

	getAvailableWindows "github.com/plindo/booking-service/internal/usecase/get_available_windows"
)

type GetAvailableWindowsUseCase interface {
	Execute(ctx context.Context, req *getAvailableWindows.Request) (*getAvailableWindows.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
