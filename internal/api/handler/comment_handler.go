package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklock/worklock/internal/core/ports"
)

type CommentHandler struct {
	comments ports.CommentService
}

func NewCommentHandler(comments ports.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type postCommentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// Post records an assistance request from the authenticated employee.
//
// @Summary      Post a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      postCommentRequest  true  "Comment text"
// @Success      201   {object}  domain.Comment
// @Failure      400   {object}  map[string]string
// @Router       /v1/comments [post]
// @Security     BearerAuth
func (h *CommentHandler) Post(c echo.Context) error {
	email, _, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req postCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	comment, err := h.comments.Post(c.Request().Context(), email, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, comment)
}

// List returns all comments, newest first, for the admin console.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Success      200  {array}  domain.Comment
// @Router       /admin/comments [get]
// @Security     BearerAuth
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.comments.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comments)
}
