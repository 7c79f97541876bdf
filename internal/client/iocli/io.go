package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал для команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// IsInteractive сообщает, подключен ли ввод к терминалу
	IsInteractive() bool
	Write(p []byte) (n int, err error)
}
