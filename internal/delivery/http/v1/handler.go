package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/services"
)

type Handler interface {
	HandleRegister(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleMe(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleListBoards(c *gin.Context)
	HandleCreateBoard(c *gin.Context)
	HandleGetBoard(c *gin.Context)
	HandleCreateColumn(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	boards services.BoardService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	boardService services.BoardService,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		boards: boardService,
	}
}
