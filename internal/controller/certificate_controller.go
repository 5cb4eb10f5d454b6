package controller

import (
	"cert_portal_backend/internal/service"
	"cert_portal_backend/internal/util"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	ResultService      *service.ResultService
	CertificateService *service.CertificateService
}

func NewCertificateController(resultService *service.ResultService, certService *service.CertificateService) *CertificateController {
	return &CertificateController{
		ResultService:      resultService,
		CertificateService: certService,
	}
}

// Download godoc
// @Summary 下载测验通过证书
// @Description 仅已通过的结果可生成证书，未通过返回400，结果不存在或不属于当前用户返回404
// @Tags 证书
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param resultId path int true "结果ID"
// @Success 200 {file} binary
// @Failure 400 {object} util.Response "结果未通过"
// @Failure 404 {object} util.Response "结果不存在"
// @Router /api/certificate/{resultId} [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("resultId"))
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

	pdfBytes, filename, err := c.CertificateService.Render(detail)
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotPassed) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(200, "application/pdf", pdfBytes)
}
