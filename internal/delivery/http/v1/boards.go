package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-kanban/internal/models"
	"github.com/adanyl0v/go-kanban/internal/services"
)

type boardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func newBoardResponse(board *models.Board) boardResponse {
	return boardResponse{
		ID:        board.ID,
		Name:      board.Name,
		OwnerID:   board.OwnerID,
		CreatedAt: board.CreatedAt,
	}
}

type columnResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	BoardID   string    `json:"boardId"`
	CreatedAt time.Time `json:"createdAt"`
}

func newColumnResponse(column *models.Column) columnResponse {
	return columnResponse{
		ID:        column.ID,
		Title:     column.Title,
		BoardID:   column.BoardID,
		CreatedAt: column.CreatedAt,
	}
}

type taskResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	ColumnID  string    `json:"columnId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		ColumnID:  task.ColumnID,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

type columnTreeResponse struct {
	columnResponse
	Tasks []taskResponse `json:"tasks"`
}

type boardTreeResponse struct {
	boardResponse
	Columns []columnTreeResponse `json:"columns"`
}

func newBoardTreeResponse(tree *models.BoardTree) boardTreeResponse {
	response := boardTreeResponse{
		boardResponse: newBoardResponse(&tree.Board),
		Columns:       make([]columnTreeResponse, 0, len(tree.Columns)),
	}
	for i := range tree.Columns {
		column := &tree.Columns[i]
		columnTree := columnTreeResponse{
			columnResponse: newColumnResponse(&column.Column),
			Tasks:          make([]taskResponse, 0, len(column.Tasks)),
		}
		for j := range column.Tasks {
			columnTree.Tasks = append(columnTree.Tasks, newTaskResponse(&column.Tasks[j]))
		}
		response.Columns = append(response.Columns, columnTree)
	}
	return response
}

func (h *handlerImpl) HandleListBoards(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	trees, err := h.boards.ListBoards(c, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to list boards")
		abortWithServiceError(c, err)
		return
	}

	response := make([]boardTreeResponse, 0, len(trees))
	for i := range trees {
		response = append(response, newBoardTreeResponse(&trees[i]))
	}
	c.JSON(http.StatusOK, response)
}

type createBoardRequest struct {
	Name string `json:"name" binding:"max=255"`
}

func (h *handlerImpl) HandleCreateBoard(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	var req createBoardRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	board, err := h.boards.CreateBoard(c, userID, req.Name)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to create board")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBoardResponse(board))
}

func (h *handlerImpl) HandleGetBoard(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	tree, err := h.boards.GetBoard(c, userID, c.Param("boardId"))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to get board")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newBoardTreeResponse(tree))
}

type createColumnRequest struct {
	Title string `json:"title" binding:"max=255"`
}

func (h *handlerImpl) HandleCreateColumn(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	var req createColumnRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	column, err := h.boards.CreateColumn(c, userID, c.Param("boardId"), req.Title)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to create column")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newColumnResponse(column))
}

type createTaskRequest struct {
	Title  string `json:"title" binding:"max=255"`
	Status string `json:"status" binding:"max=255"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.boards.CreateTask(c, services.CreateTaskParams{
		UserID:   userID,
		BoardID:  c.Param("boardId"),
		ColumnID: c.Param("columnId"),
		Title:    req.Title,
		Status:   req.Status,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to create task")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	ColumnID *string `json:"columnId" binding:"omitempty,max=255"`
	Status   *string `json:"status" binding:"omitempty,max=255"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.boards.UpdateTask(c, services.UpdateTaskParams{
		UserID:   userID,
		TaskID:   c.Param("taskId"),
		ColumnID: req.ColumnID,
		Status:   req.Status,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to update task")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	err := h.boards.DeleteTask(c, userID, c.Param("taskId"))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to delete task")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
