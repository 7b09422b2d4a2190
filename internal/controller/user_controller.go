package controller

import (
	"path/filepath"
	"strings"

	"sical_backend/internal/service"
	"sical_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 获取当前用户信息
// @Tags 用户
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=model.User}
// @Failure 401 {object} util.Response
// @Router /api/v1/users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	profile, err := c.UserService.GetProfile(user.UserID)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, profile)
}

// UpdateProfile godoc
// @Summary 更新当前用户信息
// @Tags 用户
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.ProfileUpdateRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/v1/users/me [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req service.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	profile, err := c.UserService.UpdateProfile(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Security BearerAuth
// @Accept  multipart/form-data
// @Produce  json
// @Param   avatar formData file true "头像图片"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "文件缺失或类型不支持"
// @Router /api/v1/users/me/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "缺少avatar文件")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		util.BadRequest(ctx, "头像必须是图片文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	user := util.GetUserFromContext(ctx)
	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), user.UserID, file, fileHeader.Size, filepath.Ext(fileHeader.Filename), contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// GetLearningProgress godoc
// @Summary 获取学习进度列表
// @Tags 用户
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.LearningProgress}
// @Router /api/v1/users/me/progress [get]
func (c *UserController) GetLearningProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	items, err := c.UserService.GetLearningProgress(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// ProgressRequest 进度更新请求
type ProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// UpdateLearningProgress godoc
// @Summary 更新某知识点的学习进度
// @Tags 用户
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   knowledgeId path int true "知识点ID"
// @Param   body body ProgressRequest true "进度百分比"
// @Success 200 {object} util.Response{data=model.LearningProgress}
// @Router /api/v1/users/me/progress/{knowledgeId} [put]
func (c *UserController) UpdateLearningProgress(ctx *gin.Context) {
	var req ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	knowledgeID := util.MustParseUint(ctx.Param("knowledgeId"))
	progress, err := c.UserService.UpdateLearningProgress(user.UserID, knowledgeID, req.Progress)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
