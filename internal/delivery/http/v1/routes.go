package v1

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the handler into the router. The app and
// the handler tests share this table so they cannot drift apart.
func RegisterRoutes(router gin.IRouter, handler Handler) {
	authRouter := router.Group("/auth")
	authRouter.POST("/register", handler.HandleRegister)
	authRouter.POST("/login", handler.HandleLogin)

	usersRouter := router.Group("/users", handler.HandleAuthMiddleware)
	usersRouter.GET("/me", handler.HandleMe)

	boardsRouter := router.Group("/boards", handler.HandleAuthMiddleware)
	boardsRouter.GET("", handler.HandleListBoards)
	boardsRouter.POST("", handler.HandleCreateBoard)
	boardsRouter.GET("/:boardId", handler.HandleGetBoard)
	boardsRouter.POST("/:boardId/columns", handler.HandleCreateColumn)
	boardsRouter.POST("/:boardId/columns/:columnId/tasks", handler.HandleCreateTask)
	boardsRouter.PUT("/tasks/:taskId", handler.HandleUpdateTask)
	boardsRouter.DELETE("/tasks/:taskId", handler.HandleDeleteTask)
}
