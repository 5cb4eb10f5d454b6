package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"cert_portal_backend/internal/repository"
	"cert_portal_backend/internal/util"
	"cert_portal_backend/pkg/logger"
	"cert_portal_backend/pkg/monitoring"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

type CertificateService struct {
	Archive *ArchiveService // nil 时不归档
}

func NewCertificateService(archive *ArchiveService) *CertificateService {
	return &CertificateService{Archive: archive}
}

// Render 为已通过的结果生成横版 A4 证书，未通过的结果返回
// util.ErrCertificateNotPassed。除证书编号中的生成时间戳外输出是确定的。
func (s *CertificateService) Render(result *repository.ResultDetail) ([]byte, string, error) {
	if !result.Passed {
		return nil, "", util.ErrCertificateNotPassed
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// 双层边框
	pdf.SetDrawColor(44, 62, 80)
	pdf.SetLineWidth(1.2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")

	pdf.SetDrawColor(52, 152, 219)
	pdf.SetLineWidth(0.4)
	pdf.Rect(14, 14, pageW-28, pageH-28, "D")

	// 标题
	pdf.SetFont("Helvetica", "B", 36)
	pdf.SetTextColor(44, 62, 80)
	pdf.SetY(35)
	pdf.CellFormat(0, 14, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")

	// 装饰线
	pdf.SetDrawColor(52, 152, 219)
	pdf.SetLineWidth(0.8)
	pdf.Line(70, 56, pageW-70, 56)

	pdf.SetFont("Helvetica", "", 18)
	pdf.SetTextColor(52, 73, 94)
	pdf.SetY(68)
	pdf.CellFormat(0, 8, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 32)
	pdf.SetTextColor(44, 62, 80)
	pdf.SetY(80)
	pdf.CellFormat(0, 13, result.UserName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 18)
	pdf.SetTextColor(52, 73, 94)
	pdf.SetY(100)
	pdf.CellFormat(0, 8, "has successfully completed the", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(52, 152, 219)
	pdf.SetY(112)
	pdf.CellFormat(0, 10, result.QuizTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.SetTextColor(52, 73, 94)
	pdf.SetY(130)
	scoreLine := fmt.Sprintf("with a score of %d/%d (%d%%)", result.Score, result.TotalQuestions, result.Percentage)
	pdf.CellFormat(0, 8, scoreLine, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(127, 140, 141)
	pdf.SetY(150)
	completionDate := result.CreatedAt.Format("January 2, 2006")
	pdf.CellFormat(0, 7, "Completed on: "+completionDate, "", 1, "C", false, 0, "")

	// 页脚
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(149, 165, 166)
	pdf.Text(30, pageH-32, "LMS Micro-Certification Portal")
	pdf.Text(pageW-95, pageH-32, "Authorized Digital Certificate")

	// 证书编号由结果 ID 和生成时间戳组成，不作为去重键使用
	certificateID := fmt.Sprintf("LMS-%d-%d", result.ID, time.Now().UnixMilli())
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(189, 195, 199)
	pdf.SetY(pageH - 24)
	pdf.CellFormat(0, 6, "Certificate ID: "+certificateID, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	monitoring.CertificateCounter.Inc()

	filename := fmt.Sprintf("certificate-%s-%s.pdf", dashJoin(result.QuizTitle), dashJoin(result.UserName))

	if s.Archive != nil {
		data := buf.Bytes()
		objectName := fmt.Sprintf("%d/%s", result.UserID, filename)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := s.Archive.Put(ctx, objectName, data, "application/pdf"); err != nil {
				logger.Log.Warn("certificate archive failed",
					zap.Uint("resultId", result.ID),
					zap.Error(err))
			}
		}()
	}

	return buf.Bytes(), filename, nil
}

func dashJoin(s string) string {
	return strings.Join(strings.Fields(s), "-")
}
