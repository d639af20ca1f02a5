package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/internal/domain"
	"github.com/lingochat/memories-backend/internal/middleware"
	"github.com/lingochat/memories-backend/internal/service"
	"github.com/lingochat/memories-backend/pkg/ginutil"
	"github.com/lingochat/memories-backend/pkg/i18n"
)

// MemoryHandler handles HTTP requests for memories
type MemoryHandler struct {
	service  service.MemoryService
	identity service.IdentityProvider
	pageSize int
}

// NewMemoryHandler creates a new MemoryHandler
func NewMemoryHandler(service service.MemoryService, identity service.IdentityProvider, pageSize int) *MemoryHandler {
	if pageSize <= 0 {
		pageSize = domain.FeedPageSize
	}
	return &MemoryHandler{service: service, identity: identity, pageSize: pageSize}
}

// ListFeed godoc
// @Summary      피드 조회
// @Description  본인과 친구들의 메모리를 최신순으로 최대 50개 조회합니다
// @Tags         memories
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.MemoryResponse}
// @Failure      401  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories [get]
func (h *MemoryHandler) ListFeed(c *gin.Context) {
	viewerID := middleware.GetUserID(c)

	friendIDs, err := h.identity.GetFriendIDs(c.Request.Context(), viewerID)
	if err != nil {
		h.fail(c, common.Unavailable(err))
		return
	}

	data, err := h.service.ListFeed(c.Request.Context(), viewerID, friendIDs)
	if err != nil {
		h.fail(c, err)
		return
	}

	common.SuccessWithMeta(c, data, &common.Meta{Count: len(data), Limit: h.pageSize})
}

// ListByAuthor godoc
// @Summary      사용자별 메모리 조회
// @Description  특정 사용자가 작성한 메모리를 최신순으로 조회합니다
// @Tags         memories
// @Produce      json
// @Security     CookieAuth
// @Param        userId  path  string  true  "작성자 ID"
// @Success      200  {object}  common.APIResponse{data=[]domain.MemoryResponse}
// @Failure      401  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories/user/{userId} [get]
func (h *MemoryHandler) ListByAuthor(c *gin.Context) {
	data, err := h.service.ListByAuthor(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.fail(c, err)
		return
	}

	common.SuccessWithMeta(c, data, &common.Meta{Count: len(data)})
}

// CreateMemory godoc
// @Summary      메모리 작성
// @Description  새 메모리를 작성합니다. 내용은 앞뒤 공백을 제거한 뒤 비어 있으면 안 됩니다
// @Tags         memories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        request  body  domain.CreateMemoryRequest  true  "메모리 작성 요청"
// @Success      201  {object}  common.APIResponse{data=domain.MemoryResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories [post]
func (h *MemoryHandler) CreateMemory(c *gin.Context) {
	var req domain.CreateMemoryRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, middleware.T(c, i18n.MsgBadRequest), err)
		return
	}

	data, err := h.service.CreateMemory(c.Request.Context(), middleware.GetUserID(c), req.Content, req.Image)
	if err != nil {
		h.fail(c, err)
		return
	}

	common.Created(c, data)
}

// ToggleLike godoc
// @Summary      좋아요 토글
// @Description  좋아요를 누르지 않았으면 추가하고, 이미 눌렀으면 취소합니다
// @Tags         memories
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  int  true  "메모리 ID"
// @Success      200  {object}  common.APIResponse{data=domain.MemoryResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories/{id}/like [put]
func (h *MemoryHandler) ToggleLike(c *gin.Context) {
	id, ok := h.memoryID(c)
	if !ok {
		return
	}

	data, err := h.service.ToggleLike(c.Request.Context(), id, middleware.GetUserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	common.Success(c, data)
}

// AddComment godoc
// @Summary      댓글 작성
// @Description  메모리에 댓글을 추가합니다
// @Tags         memories
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id       path  int                       true  "메모리 ID"
// @Param        request  body  domain.AddCommentRequest  true  "댓글 작성 요청"
// @Success      201  {object}  common.APIResponse{data=domain.MemoryResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories/{id}/comment [post]
func (h *MemoryHandler) AddComment(c *gin.Context) {
	id, ok := h.memoryID(c)
	if !ok {
		return
	}

	var req domain.AddCommentRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, middleware.T(c, i18n.MsgBadRequest), err)
		return
	}

	data, err := h.service.AddComment(c.Request.Context(), id, middleware.GetUserID(c), req.Content)
	if err != nil {
		h.fail(c, err)
		return
	}

	common.Created(c, data)
}

// DeleteMemory godoc
// @Summary      메모리 삭제
// @Description  메모리와 댓글을 영구 삭제합니다 (작성자 본인만 가능)
// @Tags         memories
// @Produce      json
// @Security     CookieAuth
// @Param        id  path  int  true  "메모리 ID"
// @Success      200  {object}  common.APIResponse{data=common.MessageBody}
// @Failure      400  {object}  common.APIResponse
// @Failure      401  {object}  common.APIResponse
// @Failure      403  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      500  {object}  common.APIResponse
// @Router       /memories/{id} [delete]
func (h *MemoryHandler) DeleteMemory(c *gin.Context) {
	id, ok := h.memoryID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteMemory(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		h.fail(c, err)
		return
	}

	common.Success(c, common.MessageBody{Message: middleware.T(c, i18n.MsgMemoryDeleted)})
}

// bindOptionalJSON treats an empty body like {} so missing content reports as a validation error
func bindOptionalJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (h *MemoryHandler) memoryID(c *gin.Context) (uint64, bool) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, middleware.T(c, i18n.MsgBadRequest), err)
		return 0, false
	}
	return id, true
}

// fail maps a service error onto a status code and a localized message
func (h *MemoryHandler) fail(c *gin.Context, err error) {
	status, key := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	common.ErrorResponse(c, status, middleware.T(c, key), nil)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrCommentRequired):
		return http.StatusBadRequest, i18n.MsgCommentContent
	case errors.Is(err, common.ErrContentRequired):
		return http.StatusBadRequest, i18n.MsgMemoryContent
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, i18n.MsgBadRequest
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, i18n.MsgMemoryNotFound
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, i18n.MsgMemoryNotOwner
	default:
		return http.StatusInternalServerError, i18n.MsgInternal
	}
}
