package controller

import (
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/chords"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChordController serves the static chord dictionary.
type ChordController struct{}

// NewChordController creates a new ChordController.
func NewChordController() *ChordController {
	return &ChordController{}
}

// List returns every chord name, sorted.
func (cc *ChordController) List(c *gin.Context) {
	response.SuccessResponse(c, "", gin.H{
		"chords": chords.Names(),
		"count":  chords.Len(),
	})
}

// Get returns the diagram for one chord. Names containing '/' must be path-escaped.
func (cc *ChordController) Get(c *gin.Context) {
	chord, ok := chords.Lookup(c.Param("name"))
	if !ok {
		response.ErrorResponse(c, http.StatusNotFound, "Chord not found")
		return
	}
	response.SuccessResponse(c, "", gin.H{"chord": chord})
}
