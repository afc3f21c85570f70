package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medexy/sandelia/internal/entity"
	"github.com/medexy/sandelia/internal/exporter"
	"github.com/medexy/sandelia/internal/order"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"go.uber.org/zap"
)

type orderLineRequest struct {
	ProductName string  `json:"product_name" binding:"required"`
	Quantity    int64   `json:"quantity" binding:"required"`
	Discount    float64 `json:"discount"`
}

type orderRequest struct {
	ManagerID      string             `json:"manager_id" binding:"required"`
	Customer       string             `json:"customer"`
	CustomerByName bool               `json:"customer_by_name"`
	OrderDate      string             `json:"order_date" binding:"required"`
	OrderType      string             `json:"order_type" binding:"required"`
	Lines          []orderLineRequest `json:"lines" binding:"required"`
}

func (s *Server) buildDraft(c *gin.Context, req orderRequest) (*order.Draft, bool) {
	orderType, err := entity.ParseOrderType(req.OrderType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	orderDate, err := time.Parse(recorddomain.DateFormat, req.OrderDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	draft, err := s.orders.NewDraft(c.Request.Context(), req.ManagerID, req.Customer, req.CustomerByName, orderDate, orderType)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	for _, line := range req.Lines {
		if err := s.orders.AddProduct(c.Request.Context(), draft, line.ProductName, line.Quantity, line.Discount); err != nil {
			respondError(c, err)
			return nil, false
		}
	}
	return draft, true
}

func (s *Server) previewOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := s.buildDraft(c, req)
	if !ok {
		return
	}
	summary, err := s.orders.Summary(draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func (s *Server) submitOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := s.buildDraft(c, req)
	if !ok {
		return
	}
	orderID, err := s.orders.Submit(c.Request.Context(), draft)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order_id": orderID})
}

func (s *Server) updateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft, ok := s.buildDraft(c, req)
	if !ok {
		return
	}
	if err := s.orders.Update(c.Request.Context(), c.Param("id"), draft); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getOrder(c *gin.Context) {
	rows, err := s.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) listOrders(c *gin.Context) {
	rows, err := s.orders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportTable downloads the current state of a table as ;-separated CSV.
func (s *Server) exportTable(c *gin.Context) {
	table, ok := entity.TableByName(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown table " + c.Param("name")})
		return
	}

	rows, err := s.store.Current(c.Request.Context(), table)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := exporter.Filename(table, time.Now().UTC())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	if err := exporter.WriteCSV(c.Writer, table, rows, true); err != nil {
		s.log.Error("csv export failed", zap.Error(err))
	}
}
