package controller

import (
	"encoding/json"
	"errors"

	"sical_backend/internal/scoring"
	"sical_backend/internal/service"
	"sical_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// List godoc
// @Summary 测评列表
// @Description 仅返回已发布的测评，不含题目
// @Tags 测评
// @Produce  json
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Param   category query string false "类别"
// @Param   difficulty query string false "难度"
// @Param   type query string false "类型 quiz/assignment/exam"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/v1/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	page, limit := util.ParsePagination(ctx.Query("page"), ctx.Query("limit"))
	items, total, err := c.AssessmentService.List(page, limit,
		ctx.Query("category"), ctx.Query("difficulty"), ctx.Query("type"), ctx.Query("sort"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 测评详情
// @Description 普通用户拿到的题目不含标准答案和解析
// @Tags 测评
// @Produce  json
// @Param   id path int true "测评ID"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/v1/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var userID uint
	isManager := false
	if user := util.GetUserFromContext(ctx); user != nil {
		userID = user.UserID
		isManager = util.IsContentManager(user)
	}

	a, err := c.AssessmentService.Get(id, userID, isManager)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, util.ErrNotPublished) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, a)
}

// Create godoc
// @Summary 创建测评
// @Tags 测评
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   body body service.AssessmentRequest true "测评内容"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Router /api/v1/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	a, err := c.AssessmentService.Create(user.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrNegativePoints) {
			util.UnprocessableEntity(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, a)
}

// Update godoc
// @Summary 更新测评
// @Description 题目整体替换
// @Tags 测评
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "测评ID"
// @Param   body body service.AssessmentRequest true "测评内容"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Router /api/v1/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id := util.MustParseUint(ctx.Param("id"))
	a, err := c.AssessmentService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNegativePoints):
			util.UnprocessableEntity(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, a)
}

// Delete godoc
// @Summary 删除测评
// @Tags 测评
// @Security BearerAuth
// @Produce  json
// @Param   id path int true "测评ID"
// @Success 200 {object} util.Response
// @Router /api/v1/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.AssessmentService.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// SubmitRequest 答卷提交请求。
// answers 为与题目顺序对齐的数组，每项是字符串、字符串数组或null（未作答）。
type SubmitRequest struct {
	Answers json.RawMessage `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交答卷
// @Description 按题目顺序判分，返回逐题结果、百分制得分和是否通过
// @Tags 测评
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param   id path int true "测评ID"
// @Param   body body SubmitRequest true "答案数组"
// @Success 201 {object} util.Response{data=model.AssessmentRecord}
// @Failure 404 {object} util.Response "测评不存在或未发布"
// @Failure 422 {object} util.Response "答案格式错误或测评总分为0"
// @Router /api/v1/assessments/{id}/submit [post]
func (c *AssessmentController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	rec, err := c.AssessmentService.Submit(id, user.UserID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, scoring.ErrInvalidAnswers),
			errors.Is(err, scoring.ErrNoPoints),
			errors.Is(err, scoring.ErrUnsupportedQuestionType):
			util.UnprocessableEntity(ctx, err.Error())
		case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, util.ErrNotPublished):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, rec)
}

// ListMyRecords godoc
// @Summary 我的测评记录
// @Tags 测评
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.AssessmentRecord}
// @Router /api/v1/assessments/records [get]
func (c *AssessmentController) ListMyRecords(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	recs, err := c.AssessmentService.ListMyRecords(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}
