package controller

import (
	"ctchen222/Chord-Dictionary/internal/api/middleware"
	"ctchen222/Chord-Dictionary/internal/api/models"
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/api/service"
	"ctchen222/Chord-Dictionary/internal/apperr"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ProgressionController serves saved chord progressions.
type ProgressionController struct {
	progressions service.ProgressionService
	auth         *middleware.Authenticator
	debug        bool
}

// NewProgressionController creates a new ProgressionController.
func NewProgressionController(progressions service.ProgressionService, auth *middleware.Authenticator, debug bool) *ProgressionController {
	return &ProgressionController{progressions: progressions, auth: auth, debug: debug}
}

// Get returns one progression by id, the caller's own list, or the public list.
func (pc *ProgressionController) Get(c *gin.Context) {
	var q models.ProgressionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	ctx := c.Request.Context()
	var requester *int64
	if pc.auth.IsAuthenticated(c) {
		if id, ok := middleware.SessionFrom(c).UserID(); ok {
			requester = &id
		}
	}

	if raw, ok := c.GetQuery("id"); ok {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, apperr.ErrNotFoundOrForbidden, pc.debug)
			return
		}
		p, err := pc.progressions.GetByID(ctx, id, requester)
		if err != nil {
			response.Error(c, err, pc.debug)
			return
		}
		response.SuccessResponse(c, "", gin.H{"progression": p})
		return
	}

	var (
		list []models.Progression
		err  error
	)
	if requester != nil && q.Scope != "public" {
		list, err = pc.progressions.ListForUser(ctx, *requester)
	} else {
		list, err = pc.progressions.ListPublic(ctx, q.Limit, q.Offset)
	}
	if err != nil {
		response.Error(c, err, pc.debug)
		return
	}
	response.SuccessResponse(c, "", gin.H{"progressions": list})
}

// Create saves a new progression for the caller.
func (pc *ProgressionController) Create(c *gin.Context) {
	var req models.CreateProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid input. Name and chords array are required.")
		return
	}

	userID, _ := middleware.SessionFrom(c).UserID()
	id, err := pc.progressions.Create(c.Request.Context(), userID, req.Name, req.Chords, models.Public(req.IsPublic))
	if err != nil {
		response.Error(c, err, pc.debug)
		return
	}
	response.CreatedResponse(c, "Progression saved successfully", gin.H{"progression_id": id})
}

// Update overwrites one of the caller's progressions.
func (pc *ProgressionController) Update(c *gin.Context) {
	var req models.UpdateProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid input. ID, name, and chords are required.")
		return
	}

	userID, _ := middleware.SessionFrom(c).UserID()
	err := pc.progressions.Update(c.Request.Context(), req.ID, userID, req.Name, req.Chords, models.Public(req.IsPublic))
	if err != nil {
		pc.writeError(c, err)
		return
	}
	response.SuccessResponse(c, "Progression updated successfully", nil)
}

// Delete removes one of the caller's progressions.
func (pc *ProgressionController) Delete(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		response.ErrorResponse(c, http.StatusBadRequest, "Progression ID is required")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		response.ErrorResponse(c, http.StatusBadRequest, "Invalid progression ID")
		return
	}

	userID, _ := middleware.SessionFrom(c).UserID()
	if err := pc.progressions.Delete(c.Request.Context(), id, userID); err != nil {
		pc.writeError(c, err)
		return
	}
	response.SuccessResponse(c, "Progression deleted successfully", nil)
}

// writeError reports ownership failures on writes as 400, like any other rejected write.
func (pc *ProgressionController) writeError(c *gin.Context, err error) {
	if errors.Is(err, apperr.ErrNotFoundOrForbidden) {
		response.ErrorWithStatus(c, http.StatusBadRequest, err, pc.debug)
		return
	}
	response.Error(c, err, pc.debug)
}
