package handlers

import (
	"net/http"

	"taskboard/internal/domain"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type taskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"dueDate"`
	Priority    domain.Priority `json:"priority"`
	CreatedBy   flexID          `json:"createdBy"`
	State       domain.State    `json:"state"`
}

type assignRequest struct {
	AssignedTo flexID       `json:"assignedTo"`
	State      domain.State `json:"state"`
}

type stateRequest struct {
	State domain.State `json:"state"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Create(c.Request.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		CreatedBy:   req.CreatedBy.Int(),
		State:       req.State,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	id := paramID(c, "id")
	t, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	id := paramID(c, "id")
	var req taskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Update(c.Request.Context(), id, service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		State:       req.State,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	id := paramID(c, "id")
	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

func (h *Handler) AssignTask(c *gin.Context) {
	id := paramID(c, "id")
	var req assignRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Assign(c.Request.Context(), id, req.AssignedTo.Int(), req.State)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) CompleteTask(c *gin.Context) {
	u, ok := sessionUser(c)
	if !ok {
		return
	}
	id := paramID(c, "id")
	var req stateRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Complete(c.Request.Context(), u, id, req.State)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) CloseTask(c *gin.Context) {
	id := paramID(c, "id")
	var req stateRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.Tasks.Close(c.Request.Context(), id, req.State)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// userParam reads :userId and checks the session may see that user's
// tasks: their own, or anyone's for managers and admins.
func userParam(c *gin.Context) (int64, bool) {
	u, ok := sessionUser(c)
	if !ok {
		return 0, false
	}
	userID := paramID(c, "userId")
	if u.ID != userID && !u.HasRole(domain.RoleAdmin, domain.RoleManager) {
		c.JSON(http.StatusForbidden, gin.H{"error": domain.ErrForbidden.Error()})
		return 0, false
	}
	return userID, true
}

func (h *Handler) ListUserTasks(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	tasks, err := h.Tasks.ListAssignedTo(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) UserTaskHistory(c *gin.Context) {
	userID, ok := userParam(c)
	if !ok {
		return
	}
	history, err := h.Tasks.History(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ManagerHistory lists the tasks a user created.
func (h *Handler) ManagerHistory(c *gin.Context) {
	userID := paramID(c, "userId")
	tasks, err := h.Tasks.ListCreatedBy(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
