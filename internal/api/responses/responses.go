// Package responses concentra o logger da aplicação e o formato das respostas de erro da API.
package responses

import (
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	logger   = zap.NewNop()
	loggerMu sync.RWMutex
)

// InitLogger configura o logger global. Em dev usa saída legível; senão JSON.
func InitLogger(dev bool) {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		l = zap.NewExample()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// Log devolve o logger global.
func Log() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Sync descarrega o buffer do logger; chamar no encerramento.
func Sync() {
	_ = Log().Sync()
}

// ErrorBody é o corpo JSON devolvido em erros.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Error aborta a requisição com status e mensagem; details é opcional.
func Error(c *gin.Context, status int, message string, details ...string) {
	body := ErrorBody{Error: message}
	if len(details) > 0 {
		body.Details = details[0]
	}
	Log().Warn("requisição com erro",
		zap.String("rota", c.FullPath()),
		zap.Int("status", status),
		zap.String("erro", message),
		zap.String("detalhes", body.Details))
	c.AbortWithStatusJSON(status, body)
}
