package controller

import (
	"errors"
	"net/http"

	"sical_backend/internal/model"
	"sical_backend/internal/service"
	"sical_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	CommentService *service.CommentService
}

func NewCommentController(commentService *service.CommentService) *CommentController {
	return &CommentController{CommentService: commentService}
}

// ListByKnowledge godoc
// @Summary 知识点评论列表
// @Description 顶层评论按时间倒序，回复按时间正序
// @Tags 评论
// @Produce  json
// @Param   id path int true "知识点ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/v1/knowledge/{id}/comments [get]
func (c *CommentController) ListByKnowledge(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	items, err := c.CommentService.ListByKnowledge(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// ListByPath godoc
// @Summary 学习路径评论列表
// @Tags 评论
// @Produce  json
// @Param   id path int true "路径ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Router /api/v1/paths/{id}/comments [get]
func (c *CommentController) ListByPath(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	items, err := c.CommentService.ListByPath(id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Get godoc
// @Summary 评论详情
// @Tags 评论
// @Produce  json
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/v1/comments/{id} [get]
func (c *CommentController) Get(ctx *gin.Context) {
	comment, err := c.CommentService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, comment)
}

// Create godoc
// @Summary 发表评论
// @Description 评论必须关联知识点或学习路径其一；带parentId时为回复
// @Tags 评论
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.CommentRequest true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 400 {object} util.Response "关联目标缺失或冲突"
// @Router /api/v1/comments [post]
func (c *CommentController) Create(ctx *gin.Context) {
	var req service.CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	comment, err := c.CommentService.Create(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCommentTarget):
			util.BadRequest(ctx, "评论必须且只能关联知识点或学习路径其一")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// UpdateCommentRequest 编辑评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// Update godoc
// @Summary 编辑评论
// @Description 仅作者本人可编辑
// @Tags 评论
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path string true "评论ID"
// @Param   body body UpdateCommentRequest true "新内容"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 403 {object} util.Response
// @Router /api/v1/comments/{id} [put]
func (c *CommentController) Update(ctx *gin.Context) {
	var req UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	comment, err := c.CommentService.Update(ctx.Param("id"), user.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, comment)
}

// Delete godoc
// @Summary 删除评论
// @Description 作者本人或管理员可删除，回复一并删除
// @Tags 评论
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response
// @Router /api/v1/comments/{id} [delete]
func (c *CommentController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	err := c.CommentService.Delete(ctx.Param("id"), user.UserID, user.Role == model.Admin)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Like godoc
// @Summary 点赞评论
// @Tags 评论
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "已点赞"
// @Router /api/v1/comments/{id}/like [post]
func (c *CommentController) Like(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.CommentService.Like(ctx.Param("id"), user.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyLiked):
			util.Error(ctx, http.StatusConflict, "已点赞该评论")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Unlike godoc
// @Summary 取消点赞
// @Tags 评论
// @Security BearerAuth
// @Produce  json
// @Param   id path string true "评论ID"
// @Success 200 {object} util.Response
// @Router /api/v1/comments/{id}/like [delete]
func (c *CommentController) Unlike(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if err := c.CommentService.Unlike(ctx.Param("id"), user.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
