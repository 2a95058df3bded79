package ginserver

import (
	"errors"
	"net/http"
	"sort"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resortdesk/internal/app/dto"
	"resortdesk/internal/domain/expense"
	"resortdesk/internal/domain/shared/money"
)

const monthLayout = "2006-01"

type ExpenseHandler struct {
	Expenses expense.Repository
}

type createExpenseRequest struct {
	Date     string  `json:"date" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Note     string  `json:"note"`
	Amount   float64 `json:"amount" binding:"required"`
}

func (h ExpenseHandler) Create(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := expense.New(expense.ExpenseID(uuid.NewString()), date, req.Category, req.Note, req.Amount, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Expenses.Insert(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.MapExpense(e))
}

func (h ExpenseHandler) List(c *gin.Context) {
	items, err := h.Expenses.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.Expense, 0, len(items))
	var total float64
	for _, e := range items {
		out = append(out, dto.MapExpense(e))
		total += e.Amount
	}
	c.JSON(http.StatusOK, gin.H{"items": out, "total": total})
}

type expenseCategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary totals one calendar month of expenses grouped by category. Without
// a month query parameter it reports the current month.
func (h ExpenseHandler) Summary(c *gin.Context) {
	monthStr := c.Query("month")
	if monthStr == "" {
		monthStr = time.Now().UTC().Format(monthLayout)
	}
	start, err := time.Parse(monthLayout, monthStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be formatted YYYY-MM"})
		return
	}
	end := start.AddDate(0, 1, 0)

	items, err := h.Expenses.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	byCategory := make(map[string]float64)
	var total float64
	for _, e := range items {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		byCategory[e.Category] += e.Amount
		total += e.Amount
	}
	categories := make([]expenseCategoryTotal, 0, len(byCategory))
	for category, sum := range byCategory {
		categories = append(categories, expenseCategoryTotal{Category: category, Total: money.Round(sum)})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })

	c.JSON(http.StatusOK, gin.H{
		"month":      monthStr,
		"total":      money.Round(total),
		"categories": categories,
	})
}

func (h ExpenseHandler) Delete(c *gin.Context) {
	err := h.Expenses.Delete(c.Request.Context(), expense.ExpenseID(c.Param("id")))
	if err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

var _ ExpenseHTTP = ExpenseHandler{}
