package handlers

import (
	"net/http"

	"gameplatform/pkg/logger"
	"gameplatform/services/path-service/pkg/pathpb"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
)

type PathHandler struct {
	client pathpb.PathServiceClient
	log    *logger.Logger
}

func NewPathHandler(client pathpb.PathServiceClient, log *logger.Logger) *PathHandler {
	return &PathHandler{client: client, log: log}
}

// GET /api/v1/learning-paths/:categoryId
func (h *PathHandler) LearningPath(c *gin.Context) {
	h.forward(c, pathpb.MethodGenerateLearningPath, pathpb.LearningPathRequest{
		UserID:     c.GetString("userId"),
		CategoryID: c.Param("categoryId"),
	})
}

// GET /api/v1/recommendations
func (h *PathHandler) Recommendations(c *gin.Context) {
	h.forward(c, pathpb.MethodGetRecommendations, pathpb.UserRequest{UserID: c.GetString("userId")})
}

// GET /api/v1/recommendations/nlp
func (h *PathHandler) NLPRecommendations(c *gin.Context) {
	h.forward(c, pathpb.MethodGetNLPRecommendations, pathpb.UserRequest{UserID: c.GetString("userId")})
}

type adjustDifficultyBody struct {
	ContentID string   `json:"content_id" binding:"required"`
	Score     *float64 `json:"score" binding:"required"`
}

// POST /api/v1/difficulty/adjust
func (h *PathHandler) AdjustDifficulty(c *gin.Context) {
	var body adjustDifficultyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.forward(c, pathpb.MethodAdjustContentDifficulty, pathpb.AdjustDifficultyRequest{
		UserID:    c.GetString("userId"),
		ContentID: body.ContentID,
		Score:     *body.Score,
	})
}

// GET /api/v1/difficulty/:categoryId
func (h *PathHandler) RecommendedDifficulty(c *gin.Context) {
	h.forward(c, pathpb.MethodGetRecommendedDifficulty, pathpb.RecommendedDifficultyRequest{
		UserID:     c.GetString("userId"),
		CategoryID: c.Param("categoryId"),
	})
}

// GET /api/v1/quizzes/:contentId
func (h *PathHandler) Quiz(c *gin.Context) {
	h.forward(c, pathpb.MethodGetQuiz, pathpb.QuizRequest{ContentID: c.Param("contentId")})
}

type generateContentBody struct {
	Topic      string `json:"topic" binding:"required"`
	CategoryID string `json:"category_id" binding:"required"`
}

// POST /api/v1/content/generate
func (h *PathHandler) GenerateContent(c *gin.Context) {
	var body generateContentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.forward(c, pathpb.MethodGenerateContent, pathpb.GenerateContentRequest{
		Topic:      body.Topic,
		CategoryID: body.CategoryID,
	})
}

type recordProgressBody struct {
	ContentID string   `json:"content_id" binding:"required"`
	Score     *float64 `json:"score"`
}

// POST /api/v1/progress
func (h *PathHandler) RecordProgress(c *gin.Context) {
	var body recordProgressBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.forward(c, pathpb.MethodRecordProgress, pathpb.RecordProgressRequest{
		UserID:    c.GetString("userId"),
		ContentID: body.ContentID,
		Score:     body.Score,
	})
}

// GET /api/v1/progress
func (h *PathHandler) Progress(c *gin.Context) {
	h.forward(c, pathpb.MethodGetProgress, pathpb.UserRequest{UserID: c.GetString("userId")})
}

func (h *PathHandler) forward(c *gin.Context, method string, req any) {
	in, err := pathpb.Encode(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.client.Call(c.Request.Context(), method, in)
	if err != nil {
		st := status.Convert(err)
		code := httpStatus(st.Code())
		if code == http.StatusInternalServerError {
			h.log.Error("path service call failed", "method", method, "error", err)
		}
		c.JSON(code, gin.H{"error": st.Message()})
		return
	}

	raw, err := protojson.Marshal(res)
	if err != nil {
		h.log.Error("marshal response", "method", method, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
