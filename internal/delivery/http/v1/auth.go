package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-kanban/internal/models"
	"github.com/adanyl0v/go-kanban/internal/services"
)

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req registerRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	user, err := h.auth.Register(c, services.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to register user")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	token, err := h.auth.Login(c, req.Email, req.Password)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to login")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

func (h *handlerImpl) HandleMe(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError("invalid token"))
		return
	}

	user, err := h.auth.GetUser(c, userID)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to get user")
		abortWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
