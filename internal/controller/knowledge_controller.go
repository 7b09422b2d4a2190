package controller

import (
	"errors"

	"sical_backend/internal/scoring"
	"sical_backend/internal/service"
	"sical_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type KnowledgeController struct {
	KnowledgeService *service.KnowledgeService
}

func NewKnowledgeController(knowledgeService *service.KnowledgeService) *KnowledgeController {
	return &KnowledgeController{KnowledgeService: knowledgeService}
}

// List godoc
// @Summary 知识点列表
// @Tags 知识点
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Param   category query string false "类别"
// @Param   difficulty query string false "难度"
// @Param   sort query string false "排序，如 -createdAt,title"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/knowledge [get]
func (c *KnowledgeController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	items, total, err := c.KnowledgeService.List(page, limit, ctx.Query("category"), ctx.Query("difficulty"), ctx.Query("sort"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 知识点详情
// @Description 返回知识点完整内容并累计浏览次数
// @Tags 知识点
// @Produce  json
// @Param   id path int true "知识点ID"
// @Success 200 {object} util.Response{data=model.Knowledge}
// @Failure 404 {object} util.Response
// @Router /api/v1/knowledge/{id} [get]
func (c *KnowledgeController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	k, err := c.KnowledgeService.Get(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, k)
}

// ListByCategory godoc
// @Summary 按类别列出知识点
// @Tags 知识点
// @Produce  json
// @Param   category path string true "类别"
// @Success 200 {object} util.Response{data=[]model.Knowledge}
// @Router /api/v1/knowledge/category/{category} [get]
func (c *KnowledgeController) ListByCategory(ctx *gin.Context) {
	items, err := c.KnowledgeService.ListByCategory(ctx.Param("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Search godoc
// @Summary 搜索知识点
// @Description 按标题、描述和标签模糊匹配
// @Tags 知识点
// @Produce  json
// @Param   q query string true "关键词"
// @Success 200 {object} util.Response{data=[]model.Knowledge}
// @Router /api/v1/knowledge/search [get]
func (c *KnowledgeController) Search(ctx *gin.Context) {
	keyword := ctx.Query("q")
	if keyword == "" {
		util.BadRequest(ctx, "缺少搜索关键词q")
		return
	}
	items, err := c.KnowledgeService.Search(keyword)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Create godoc
// @Summary 创建知识点
// @Tags 知识点
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.KnowledgeRequest true "知识点内容"
// @Success 201 {object} util.Response{data=model.Knowledge}
// @Failure 403 {object} util.Response "需要教师或管理员权限"
// @Router /api/v1/knowledge [post]
func (c *KnowledgeController) Create(ctx *gin.Context) {
	var req service.KnowledgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	k, err := c.KnowledgeService.Create(user.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, k)
}

// Update godoc
// @Summary 更新知识点
// @Tags 知识点
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "知识点ID"
// @Param   body body service.KnowledgeRequest true "知识点内容"
// @Success 200 {object} util.Response{data=model.Knowledge}
// @Router /api/v1/knowledge/{id} [put]
func (c *KnowledgeController) Update(ctx *gin.Context) {
	var req service.KnowledgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	k, err := c.KnowledgeService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, k)
}

// Delete godoc
// @Summary 删除知识点
// @Tags 知识点
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "知识点ID"
// @Success 200 {object} util.Response
// @Router /api/v1/knowledge/{id} [delete]
func (c *KnowledgeController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.KnowledgeService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// RateRequest 评分请求
type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// Rate godoc
// @Summary 给知识点评分
// @Description 评分1-5，折叠进平均分
// @Tags 知识点
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "知识点ID"
// @Param   body body RateRequest true "评分"
// @Success 200 {object} util.Response{data=object}
// @Failure 422 {object} util.Response "评分超出范围"
// @Router /api/v1/knowledge/{id}/rate [post]
func (c *KnowledgeController) Rate(ctx *gin.Context) {
	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	k, err := c.KnowledgeService.Rate(ctx.Request.Context(), id, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrRatingOutOfRange):
			util.UnprocessableEntity(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"averageRating": k.AverageRating, "ratingsCount": k.RatingsCount})
}

// UploadVisualization godoc
// @Summary 上传知识点可视化资源
// @Description 支持图片、视频、交互式资源；视频自动探测时长
// @Tags 知识点
// @Security BearerAuth
// @Accept  multipart/form-data
// @Produce  json
// @Param   id path int true "知识点ID"
// @Param   file formData file true "资源文件"
// @Param   type formData string true "资源类型"
// @Param   title formData string false "标题"
// @Success 201 {object} util.Response{data=model.Visualization}
// @Router /api/v1/knowledge/{id}/visualizations [post]
func (c *KnowledgeController) UploadVisualization(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少file文件")
		return
	}
	vizType := ctx.PostForm("type")
	if vizType == "" {
		util.BadRequest(ctx, "缺少资源类型type")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	id := util.MustParseUint(ctx.Param("id"))
	viz, err := c.KnowledgeService.UploadVisualization(
		ctx.Request.Context(), id, vizType, ctx.PostForm("title"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, viz)
}
