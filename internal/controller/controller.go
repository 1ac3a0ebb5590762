package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/trivia-api/internal/dto"
	"github.com/lshigami/trivia-api/internal/repository"
	"github.com/lshigami/trivia-api/internal/service"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	categorySvc service.CategoryService
	questionSvc service.QuestionService
	quizSvc     service.QuizService
	health      repository.HealthRepository
}

func NewController(cSvc service.CategoryService, qSvc service.QuestionService, quizSvc service.QuizService, health repository.HealthRepository) *Controller {
	return &Controller{
		categorySvc: cSvc,
		questionSvc: qSvc,
		quizSvc:     quizSvc,
		health:      health,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", ctrl.HealthHandler)

	categories := router.Group("/categories")
	categories.GET("", ctrl.GetCategoriesHandler)
	categories.GET("/:category_id/questions", ctrl.GetCategoryQuestionsHandler)

	questions := router.Group("/questions")
	questions.GET("", ctrl.GetQuestionsHandler)
	questions.POST("", ctrl.CreateOrSearchQuestionsHandler)
	questions.DELETE("/:id", ctrl.DeleteQuestionHandler)

	router.POST("/play", ctrl.PlayHandler)
}

// --- Category Handlers ---

// GetCategoriesHandler godoc
// @Summary List categories
// @Description Returns every category as a map from id to type label
// @Tags categories
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Failure 422 {object} dto.ErrorResponse "Store failure"
// @Router /categories [get]
func (ctrl *Controller) GetCategoriesHandler(c *gin.Context) {
	resp, err := ctrl.categorySvc.GetCategories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategoryQuestionsHandler godoc
// @Summary List questions of a category
// @Tags categories
// @Produce json
// @Param category_id path int true "Category ID"
// @Success 200 {object} dto.CategoryQuestionsResponse
// @Failure 404 {object} dto.ErrorResponse "No questions in this category"
// @Router /categories/{category_id}/questions [get]
func (ctrl *Controller) GetCategoryQuestionsHandler(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil {
		NotFound(c)
		return
	}
	resp, err := ctrl.questionSvc.GetQuestionsByCategory(uint(categoryID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Question Handlers ---

// GetQuestionsHandler godoc
// @Summary List questions, paginated
// @Description Pages are 1-indexed. A page without questions is reported as 422.
// @Tags questions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.QuestionPageResponse
// @Failure 422 {object} dto.ErrorResponse "Empty page or store failure"
// @Router /questions [get]
func (ctrl *Controller) GetQuestionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := ctrl.questionSvc.ListQuestions(page, limit)
	if err != nil {
		log.Warn().Err(err).Int("page", page).Msg("GetQuestions: request failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateOrSearchQuestionsHandler godoc
// @Summary Create a question or search questions
// @Description With a non-empty "search" field, returns every question whose text contains the term (case-insensitive). Otherwise creates a question from the remaining fields.
// @Tags questions
// @Accept json
// @Produce json
// @Param body body dto.QuestionCreateOrSearchRequest true "Search term or new question"
// @Success 200 {object} dto.SearchQuestionsResponse "Search results"
// @Success 200 {object} dto.CreateQuestionResponse "Question created"
// @Failure 422 {object} dto.ErrorResponse "Invalid body or insert failure"
// @Router /questions [post]
func (ctrl *Controller) CreateOrSearchQuestionsHandler(c *gin.Context) {
	var req dto.QuestionCreateOrSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind QuestionCreateOrSearchRequest")
		NotProcessable(c)
		return
	}

	if req.Search != "" {
		resp, err := ctrl.questionSvc.SearchQuestions(req.Search)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := ctrl.questionSvc.CreateQuestion(req)
	if err != nil {
		log.Warn().Err(err).Msg("CreateQuestion: request failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Description A missing question is reported as 422.
// @Tags questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.DeleteQuestionResponse
// @Failure 422 {object} dto.ErrorResponse "Question not found or delete failure"
// @Router /questions/{id} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		NotProcessable(c)
		return
	}
	resp, err := ctrl.questionSvc.DeleteQuestion(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Quiz Handlers ---

// PlayHandler godoc
// @Summary Draw the next quiz question
// @Description Picks a random question from the requested category (any when the id is absent or 0) that is not in previous_questions.
// @Tags quiz
// @Accept json
// @Produce json
// @Param body body dto.PlayRequest true "Quiz category and previously played question ids"
// @Success 200 {object} dto.PlayResponse
// @Failure 404 {object} dto.ErrorResponse "No questions left"
// @Failure 422 {object} dto.ErrorResponse "Unknown category or invalid body"
// @Router /play [post]
func (ctrl *Controller) PlayHandler(c *gin.Context) {
	var req dto.PlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind PlayRequest")
		NotProcessable(c)
		return
	}
	resp, err := ctrl.quizSvc.NextQuestion(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HealthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /healthz [get]
func (ctrl *Controller) HealthHandler(c *gin.Context) {
	if err := ctrl.health.Ping(); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Success: false, Message: msgServerError})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Success: true})
}
