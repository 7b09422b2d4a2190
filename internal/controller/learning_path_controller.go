package controller

import (
	"errors"
	"net/http"

	"sical_backend/internal/scoring"
	"sical_backend/internal/service"
	"sical_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LearningPathController struct {
	PathService *service.LearningPathService
}

func NewLearningPathController(pathService *service.LearningPathService) *LearningPathController {
	return &LearningPathController{PathService: pathService}
}

// List godoc
// @Summary 学习路径列表
// @Description 仅返回已发布的路径
// @Tags 学习路径
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Param   category query string false "类别"
// @Param   difficulty query string false "难度"
// @Param   sort query string false "排序"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/paths [get]
func (c *LearningPathController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	items, total, err := c.PathService.List(page, limit, ctx.Query("category"), ctx.Query("difficulty"), ctx.Query("sort"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 学习路径详情
// @Description 含按顺序排列的步骤；未发布的路径仅创建者和管理员可见
// @Tags 学习路径
// @Produce  json
// @Param   id path int true "路径ID"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Failure 404 {object} util.Response
// @Router /api/v1/paths/{id} [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var userID uint
	isManager := false
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
		isManager = util.IsContentManager(user)
	}

	p, err := c.PathService.Get(id, userID, isManager)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrNotPublished) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

// Create godoc
// @Summary 创建学习路径
// @Tags 学习路径
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.LearningPathRequest true "路径内容"
// @Success 201 {object} util.Response{data=model.LearningPath}
// @Router /api/v1/paths [post]
func (c *LearningPathController) Create(ctx *gin.Context) {
	var req service.LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	p, err := c.PathService.Create(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// Update godoc
// @Summary 更新学习路径
// @Description 步骤整体替换
// @Tags 学习路径
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "路径ID"
// @Param   body body service.LearningPathRequest true "路径内容"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/v1/paths/{id} [put]
func (c *LearningPathController) Update(ctx *gin.Context) {
	var req service.LearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	p, err := c.PathService.Update(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

// Delete godoc
// @Summary 删除学习路径
// @Tags 学习路径
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "路径ID"
// @Success 200 {object} util.Response
// @Router /api/v1/paths/{id} [delete]
func (c *LearningPathController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.PathService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary 报名学习路径
// @Tags 学习路径
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "路径ID"
// @Success 201 {object} util.Response{data=model.PathEnrollment}
// @Failure 409 {object} util.Response "已报名"
// @Router /api/v1/paths/{id}/enroll [post]
func (c *LearningPathController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	e, err := c.PathService.Enroll(id, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, http.StatusConflict, "已报名该路径")
		case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrNotPublished):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, e)
}

// Complete godoc
// @Summary 标记学习路径完成
// @Tags 学习路径
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "路径ID"
// @Success 200 {object} util.Response{data=model.PathEnrollment}
// @Failure 409 {object} util.Response "未报名或已完成"
// @Router /api/v1/paths/{id}/complete [post]
func (c *LearningPathController) Complete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	e, err := c.PathService.Complete(id, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.Error(ctx, http.StatusConflict, "尚未报名该路径")
		case errors.Is(err, util.ErrAlreadyCompleted):
			util.Error(ctx, http.StatusConflict, "该路径已标记完成")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, e)
}

// ListEnrolled godoc
// @Summary 我报名的学习路径
// @Tags 学习路径
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.LearningPath}
// @Router /api/v1/paths/enrolled [get]
func (c *LearningPathController) ListEnrolled(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	items, err := c.PathService.ListEnrolled(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Rate godoc
// @Summary 给学习路径评分
// @Description 完成路径后才能评分，评分1-5
// @Tags 学习路径
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "路径ID"
// @Param   body body RateRequest true "评分"
// @Success 200 {object} util.Response{data=object}
// @Failure 409 {object} util.Response "未完成该路径"
// @Failure 422 {object} util.Response "评分超出范围"
// @Router /api/v1/paths/{id}/rate [post]
func (c *LearningPathController) Rate(ctx *gin.Context) {
	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	p, err := c.PathService.Rate(id, user.UserID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled), errors.Is(err, util.ErrMustComplete):
			util.Error(ctx, http.StatusConflict, "完成该路径后才能评分")
		case errors.Is(err, scoring.ErrRatingOutOfRange):
			util.UnprocessableEntity(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"averageRating": p.AverageRating, "ratingsCount": p.RatingsCount})
}
