package expense

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spendlens/spendlens/internal/auth"
	httperr "github.com/spendlens/spendlens/internal/core/errors"
	"github.com/spendlens/spendlens/internal/core/storage"
)

// RegisterRoutes registers the expense CRUD endpoints behind the identity
// middleware.
func (s *Service) RegisterRoutes(r gin.IRouter, requireOwner gin.HandlerFunc) {
	g := r.Group("/v1/expenses", requireOwner)
	g.GET("", s.HandleList)
	g.POST("", s.HandleCreate)
	g.PATCH("/:id", s.HandleUpdate)
	g.DELETE("/:id", s.HandleDelete)
}

func (s *Service) HandleList(c *gin.Context) {
	expenses, err := s.List(c.Request.Context(), auth.Owner(c))
	if err != nil {
		writeInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": expenses})
}

func (s *Service) HandleCreate(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	expense, err := s.Create(c.Request.Context(), auth.Owner(c), in)
	if err != nil {
		if errors.Is(err, ErrInvalidExpense) {
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid expense",
				Details:   err.Error(),
			})
			return
		}
		writeInternal(c, err)
		return
	}

	slog.Info("Created expense",
		"owner_id", expense.OwnerID,
		"expense_id", expense.ID,
		"category", expense.Category)
	c.JSON(http.StatusCreated, gin.H{"data": expense})
}

func (s *Service) HandleUpdate(c *gin.Context) {
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON body",
			Details:   err.Error(),
		})
		return
	}

	expense, err := s.Update(c.Request.Context(), auth.Owner(c), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExpense):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid expense",
				Details:   err.Error(),
			})
		case errors.Is(err, storage.ErrNotFound):
			writeNotFound(c)
		default:
			writeInternal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": expense})
}

func (s *Service) HandleDelete(c *gin.Context) {
	err := s.Delete(c.Request.Context(), auth.Owner(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeNotFound(c)
			return
		}
		writeInternal(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func writeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, httperr.ErrorResponse{
		ErrorType: httperr.HttpNotFoundError,
		Message:   "Expense not found",
	})
}

func writeInternal(c *gin.Context, err error) {
	slog.Error("Expense request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Internal error",
	})
}
