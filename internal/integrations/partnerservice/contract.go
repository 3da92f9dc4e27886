package partnerservice

// Logger интерфейс логгера для клиента PartnerService
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
