package observability

import (
	"github.com/sindauto/agendamento/internal/logging"
	"github.com/sindauto/agendamento/internal/utils"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCPF masks a CPF for logging. Punctuated input is normalized first.
func MaskCPF(cpf string) string {
	d := utils.NormalizeCPF(cpf)
	if len(d) != 11 {
		return "***.***.***-**"
	}
	return d[:3] + ".***." + d[6:9] + "-**"
}
