package controller

import (
	"cert_portal_backend/internal/service"
	"cert_portal_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// ListResults godoc
// @Summary 获取当前用户的全部测验结果
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.ResultService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"results": results})
}

// GetResult godoc
// @Summary 获取单条结果详情
// @Description 不属于当前用户的结果与不存在的结果一样返回404
// @Tags 结果
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "结果ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "结果不存在"
// @Router /api/result/{id} [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	detail, err := c.ResultService.GetByID(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrResultNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"result": detail})
}
