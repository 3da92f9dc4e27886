package customerservice

// Logger интерфейс логгера для клиента CustomerService
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
