package api

import (
	"alcyxob/workout-tracker/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages sent to clients; causes are only logged.
const (
	msgReadFailed  = "Failed to read workouts"
	msgWriteFailed = "Failed to save workouts"
	msgNotAnArray  = "Request body must be a JSON array of workouts"
	msgTooLarge    = "Request body too large"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// SaveWorkoutsResponse is returned after a successful replace.
type SaveWorkoutsResponse struct {
	Success bool `json:"success"`
}

// GetWorkouts godoc
// @Summary Get all workouts
// @Produce json
// @Success 200 {array} domain.Workout
// @Failure 500 {object} gin.H "Read failure"
// @Router /workouts [get]
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	items, err := h.workoutService.GetAll(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, msgReadFailed)
		return
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	c.JSON(http.StatusOK, items)
}

// SaveWorkouts godoc
// @Summary Replace all workouts
// @Description Overwrites the stored collection with the request body. Not a merge.
// @Description Entries are stored as sent; only the array shape is checked.
// @Accept json
// @Produce json
// @Param workouts body []domain.Workout true "Complete workout collection"
// @Success 200 {object} SaveWorkoutsResponse
// @Failure 400 {object} gin.H "Body is not a JSON array"
// @Failure 413 {object} gin.H "Body too large"
// @Failure 500 {object} gin.H "Write failure"
// @Router /workouts [post]
func (h *WorkoutHandler) SaveWorkouts(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusRequestEntityTooLarge, msgTooLarge)
			return
		}
		abortWithError(c, http.StatusBadRequest, msgNotAnArray)
		return
	}
	// Entries stay raw so fields this server does not model are kept.
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		abortWithError(c, http.StatusBadRequest, msgNotAnArray)
		return
	}
	// A literal null decodes without error but is not an array.
	if items == nil {
		abortWithError(c, http.StatusBadRequest, msgNotAnArray)
		return
	}

	if err := h.workoutService.ReplaceAll(c.Request.Context(), items); err != nil {
		abortWithError(c, http.StatusInternalServerError, msgWriteFailed)
		return
	}
	c.JSON(http.StatusOK, SaveWorkoutsResponse{Success: true})
}
