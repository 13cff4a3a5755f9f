package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tzetzo/task-manager-api/internal/server/models"
	"github.com/tzetzo/task-manager-api/internal/server/services"
)

type createTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type updateTaskRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentAccount(c).ID, services.CreateTaskInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task.Public()})
}

// listTasks returns the caller's tasks; ?completed=true|false narrows the
// result.
func (s *Server) listTasks(c *gin.Context) {
	tasks, err := s.tasks.ListOwned(c.Request.Context(), currentAccount(c).ID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	if v := c.Query("completed"); v != "" {
		want, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be true or false"})
			return
		}
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Completed == want {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	out := make([]models.PublicTask, 0, len(tasks))
	for i := range tasks {
		out = append(out, tasks[i].Public())
	}

	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

func (s *Server) getTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), currentAccount(c).ID, c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task.Public()})
}

func (s *Server) updateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), currentAccount(c).ID, c.Param("id"), services.UpdateTaskInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task.Public()})
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), currentAccount(c).ID, c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
