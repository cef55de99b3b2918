package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/advice"
	"github.com/abhisek/shindan/internal/compat"
	"github.com/abhisek/shindan/internal/quiz"
	"github.com/abhisek/shindan/internal/selector"
	"github.com/abhisek/shindan/internal/store"
)

func abort(c *gin.Context, status int, code, msg string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{Message: msg, Code: code, Details: details})
}

func badRequest(c *gin.Context, err error) {
	abort(c, http.StatusBadRequest, CodeBadRequest, "Invalid request", err.Error())
}

func (s *Server) internalError(c *gin.Context, msg string, err error) {
	s.deps.Logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	abort(c, http.StatusInternalServerError, CodeInternal, msg, nil)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{Status: "ok", Version: s.deps.Version})
}

func (s *Server) initialQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, initialResponse{
		Questions: s.deps.Selector.InitialQuestions(),
		Total:     s.deps.Selector.Total(),
	})
}

// resolve maps question IDs to bank questions.
func (s *Server) resolve(ids []string) ([]quiz.Question, error) {
	out := make([]quiz.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := s.deps.Selector.Bank().FindQuestion(id)
		if !ok {
			return nil, fmt.Errorf("unknown question ID %q", id)
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *Server) nextQuestion(c *gin.Context) {
	var req NextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hint, err := quiz.NormalizeHint(req.TypeHint)
	if err != nil {
		badRequest(c, err)
		return
	}
	answered, err := s.resolve(req.AnsweredIDs)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeUnknownID, "Unknown question", err.Error())
		return
	}

	q, err := s.deps.Selector.Next(selector.Context{
		TypeHint:       hint,
		Scores:         req.Scores,
		Answered:       answered,
		QuestionNumber: req.QuestionNumber,
		History:        req.History,
	})
	if errors.Is(err, selector.ErrQuestionOutOfRange) {
		abort(c, http.StatusBadRequest, CodeOutOfRange, "Question number out of range", err.Error())
		return
	}
	if err != nil {
		s.internalError(c, "Failed to select question", err)
		return
	}

	c.JSON(http.StatusOK, nextResponse{
		Question:       q,
		QuestionNumber: req.QuestionNumber,
		Total:          s.deps.Selector.Total(),
	})
}

func (s *Server) validatePath(c *gin.Context) {
	var req ValidatePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	path, err := s.resolve(req.QuestionIDs)
	if err != nil {
		abort(c, http.StatusBadRequest, CodeUnknownID, "Unknown question", err.Error())
		return
	}
	report, err := selector.ValidatePath(path, s.deps.Selector.Bank().Balance)
	if err != nil {
		s.internalError(c, "Failed to validate path", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) listCharacters(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Data.Characters)
}

func (s *Server) getCharacter(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	ch, ok := s.deps.Data.Character(code)
	if !ok {
		abort(c, http.StatusNotFound, CodeNotFound, "Character not found", code)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) compatibility(c *gin.Context) {
	r, err := compat.Check(c.Query("a"), c.Query("b"))
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) requireResults(c *gin.Context) bool {
	if s.deps.Results == nil {
		abort(c, http.StatusServiceUnavailable, CodeUnavailable, "Result storage is not configured", nil)
		return false
	}
	return true
}

func (s *Server) saveResult(c *gin.Context) {
	if !s.requireResults(c) {
		return
	}
	var req SaveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	hint, err := quiz.NormalizeHint(req.TypeHint)
	if err != nil {
		badRequest(c, err)
		return
	}

	code := quiz.TypeCode(req.Scores)
	if req.CharacterCode != "" && !strings.EqualFold(req.CharacterCode, code) {
		abort(c, http.StatusUnprocessableEntity, CodeCodeMismatch,
			"Character code does not match scores",
			gin.H{"sent": req.CharacterCode, "derived": code})
		return
	}
	ch, ok := s.deps.Data.Character(code)
	if !ok {
		s.internalError(c, "No character for derived code", fmt.Errorf("code %s", code))
		return
	}

	res := &store.Result{
		CharacterCode: code,
		CharacterName: ch.Name,
		Scores:        req.Scores,
		History:       req.History,
		Advice:        req.Advice,
		TypeHint:      hint,
	}
	if err := s.deps.Results.Save(c.Request.Context(), res); err != nil {
		s.internalError(c, "Failed to save result", err)
		return
	}
	s.deps.Metrics.ObserveResult(code)

	c.JSON(http.StatusCreated, saveResultResponse{
		ID:            res.ID,
		CharacterCode: code,
		CharacterName: ch.Name,
	})
}

func (s *Server) getResult(c *gin.Context) {
	if !s.requireResults(c) {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	res, err := s.deps.Results.Get(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		abort(c, http.StatusNotFound, CodeNotFound, "Result not found", id)
		return
	}
	if err != nil {
		s.internalError(c, "Failed to load result", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) listResults(c *gin.Context) {
	if !s.requireResults(c) {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			abort(c, http.StatusBadRequest, CodeBadRequest, "Invalid limit", raw)
			return
		}
		limit = n
	}
	results, err := s.deps.Results.List(c.Request.Context(), limit)
	if err != nil {
		s.internalError(c, "Failed to list results", err)
		return
	}
	if results == nil {
		results = []store.Result{}
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) resultStats(c *gin.Context) {
	if !s.requireResults(c) {
		return
	}
	stats, err := s.deps.Results.CharacterStats(c.Request.Context())
	if err != nil {
		s.internalError(c, "Failed to load stats", err)
		return
	}
	if stats == nil {
		stats = []store.CharacterStat{}
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) generateAdvice(c *gin.Context) {
	var req AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ch, ok := s.deps.Data.Character(req.CharacterCode)
	if !ok {
		abort(c, http.StatusNotFound, CodeNotFound, "Character not found", req.CharacterCode)
		return
	}

	a, err := s.deps.Advice.Generate(c.Request.Context(), advice.Input{Character: ch, History: req.History})
	if err != nil {
		s.internalError(c, "Failed to generate advice", err)
		return
	}
	c.JSON(http.StatusOK, a)
}
