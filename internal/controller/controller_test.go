package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"cert_portal_backend/internal/config"
	"cert_portal_backend/internal/middleware"
	"cert_portal_backend/internal/model"
	"cert_portal_backend/internal/repository"
	"cert_portal_backend/internal/service"
	"cert_portal_backend/pkg/database"
	"cert_portal_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger("test")
	m.Run()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:controllertest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Quiz{}, &model.Question{}, &model.Result{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// setupServer 按生产路由装配一个最小服务端，数据库种默认题库
func setupServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	if err := database.SeedCatalog(db); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.Secret = "controller-test-secret"
	cfg.JWT.ExpireTime = time.Hour

	userRepo := repository.NewUserRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	resultRepo := repository.NewResultRepository(db)

	authSvc := service.NewAuthService(userRepo, cfg)
	quizSvc := service.NewQuizService(quizRepo, nil, cfg)
	resultSvc := service.NewResultService(quizRepo, resultRepo)
	certSvc := service.NewCertificateService(nil)

	auth := NewAuthController(authSvc)
	quiz := NewQuizController(quizSvc, resultSvc)
	result := NewResultController(resultSvc)
	cert := NewCertificateController(resultSvc, certSvc)
	health := NewHealthController(db)

	router := gin.New()

	public := router.Group("/api")
	{
		public.GET("/health", health.HealthCheck)
		public.POST("/register", auth.Register)
		public.POST("/login", auth.Login)
		public.GET("/quizzes/public", quiz.ListQuizzes)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", auth.GetProfile)
		authGroup.GET("/quizzes", quiz.ListQuizzes)
		authGroup.GET("/quiz/:id", quiz.GetQuiz)
		authGroup.POST("/quiz/:id/submit", quiz.Submit)
		authGroup.GET("/results", result.ListResults)
		authGroup.GET("/result/:id", result.GetResult)
		authGroup.GET("/certificate/:resultId", cert.Download)
	}

	return router, db
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/register", "", gin.H{
		"name": name, "email": email, "password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("no token in login response: %s", w.Body.String())
	}
	return data.Token
}

func firstQuizWithAnswers(t *testing.T, db *gorm.DB) (*model.Quiz, []model.Question) {
	t.Helper()

	var quiz model.Quiz
	if err := db.Where("title = ?", "React Basics").First(&quiz).Error; err != nil {
		t.Fatalf("load seeded quiz: %v", err)
	}
	var questions []model.Question
	if err := db.Where("quiz_id = ?", quiz.ID).Order("id asc").Find(&questions).Error; err != nil {
		t.Fatalf("load seeded questions: %v", err)
	}
	return &quiz, questions
}

func TestQuizEndpointsRequireAuth(t *testing.T) {
	router, _ := setupServer(t)

	for _, path := range []string{"/api/quizzes", "/api/quiz/1", "/api/results", "/api/result/1", "/api/certificate/1"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d, want 401", path, w.Code)
		}
	}

	// 公开目录无需登录
	w := doJSON(t, router, http.MethodGet, "/api/quizzes/public", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("public catalog status = %d, want 200", w.Code)
	}
}

func TestGetQuizHidesCorrectAnswers(t *testing.T) {
	router, db := setupServer(t)
	token := registerAndLogin(t, router, "Jane Doe", "jane@example.com")
	quiz, _ := firstQuizWithAnswers(t, db)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/quiz/%d", quiz.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	body := w.Body.String()
	if strings.Contains(body, "correctAnswer") {
		t.Error("quiz detail leaks correct answers")
	}
	if !strings.Contains(body, "questionText") {
		t.Errorf("quiz detail missing questions: %s", body)
	}

	w = doJSON(t, router, http.MethodGet, "/api/quiz/99999", token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing quiz status = %d, want 404", w.Code)
	}
}

func TestSubmitResultAndCertificateFlow(t *testing.T) {
	router, db := setupServer(t)
	token := registerAndLogin(t, router, "Jane Doe", "jane@example.com")
	quiz, questions := firstQuizWithAnswers(t, db)

	// 5 题对 4 题，75 分及格线，80% 通过
	answers := map[string]string{}
	for i, q := range questions {
		if i < 4 {
			answers[fmt.Sprint(q.ID)] = string(q.CorrectAnswer)
		} else {
			answers[fmt.Sprint(q.ID)] = wrongAnswer(q.CorrectAnswer)
		}
	}

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), token, gin.H{
		"answers": answers, "timeTaken": 321,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	var submitResp service.SubmitResponse
	if err := json.Unmarshal(env.Data, &submitResp); err != nil {
		t.Fatalf("decode submit data: %v", err)
	}

	if submitResp.Score != 4 || submitResp.Percentage != 80 || !submitResp.Passed {
		t.Fatalf("submit outcome = %+v", submitResp)
	}
	if submitResp.PassingScore != 75 || submitResp.QuizTitle != "React Basics" {
		t.Errorf("submit meta = %+v", submitResp)
	}

	// 本人可以读取结果
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/result/%d", submitResp.ResultID), token, nil)
	if w.Code != http.StatusOK {
		t.Errorf("own result status = %d: %s", w.Code, w.Body.String())
	}

	// 他人读取同一结果得到 404
	otherToken := registerAndLogin(t, router, "Other", "other@example.com")
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/result/%d", submitResp.ResultID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign result status = %d, want 404", w.Code)
	}

	// 通过的结果可下载 PDF 证书
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/certificate/%d", submitResp.ResultID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("certificate status = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("certificate content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
		t.Error("certificate body is not a PDF")
	}

	// 他人的证书同样表现为不存在
	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/certificate/%d", submitResp.ResultID), otherToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign certificate status = %d, want 404", w.Code)
	}
}

func TestCertificateRejectedForFailedResult(t *testing.T) {
	router, db := setupServer(t)
	token := registerAndLogin(t, router, "Jane Doe", "jane@example.com")
	quiz, questions := firstQuizWithAnswers(t, db)

	// 3/5 = 60%，低于 75 的及格线
	answers := map[string]string{}
	for i, q := range questions {
		if i < 3 {
			answers[fmt.Sprint(q.ID)] = string(q.CorrectAnswer)
		} else {
			answers[fmt.Sprint(q.ID)] = wrongAnswer(q.CorrectAnswer)
		}
	}

	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), token, gin.H{
		"answers": answers, "timeTaken": 200,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", w.Code, w.Body.String())
	}

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	var submitResp service.SubmitResponse
	json.Unmarshal(env.Data, &submitResp)

	if submitResp.Passed || submitResp.Percentage != 60 {
		t.Fatalf("submit outcome = %+v, want 60%% fail", submitResp)
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/certificate/%d", submitResp.ResultID), token, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("failed certificate status = %d, want 400", w.Code)
	}
}

func TestResultsListOmitsAnswerDetails(t *testing.T) {
	router, db := setupServer(t)
	token := registerAndLogin(t, router, "Jane Doe", "jane@example.com")
	quiz, questions := firstQuizWithAnswers(t, db)

	answers := map[string]string{}
	for _, q := range questions {
		answers[fmt.Sprint(q.ID)] = string(q.CorrectAnswer)
	}
	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), token, gin.H{
		"answers": answers, "timeTaken": 100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/results", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results status = %d: %s", w.Code, w.Body.String())
	}

	// 列表是概要视图：有分数和标题，不携带答案明细和外键
	body := w.Body.String()
	for _, field := range []string{"\"score\"", "\"percentage\"", "\"quizTitle\""} {
		if !strings.Contains(body, field) {
			t.Errorf("results list missing %s: %s", field, body)
		}
	}
	for _, field := range []string{"\"answers\"", "\"quizId\"", "\"userId\""} {
		if strings.Contains(body, field) {
			t.Errorf("results list leaks %s: %s", field, body)
		}
	}
}

func TestSubmitOverTimeLimitRejected(t *testing.T) {
	router, db := setupServer(t)
	token := registerAndLogin(t, router, "Late Larry", "larry@example.com")
	quiz, _ := firstQuizWithAnswers(t, db)

	// React Basics 时限 20 分钟
	w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/quiz/%d/submit", quiz.ID), token, gin.H{
		"answers": map[string]string{}, "timeTaken": 20*60 + 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("over-limit submit status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func wrongAnswer(correct model.OptionLetter) string {
	if correct == model.OptionA {
		return string(model.OptionB)
	}
	return string(model.OptionA)
}
