package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medexy/sandelia/internal/entity"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
)

type entityTable string

const (
	entityTableManagers  entityTable = "manager"
	entityTableCustomers entityTable = "customer"
	entityTableProducts  entityTable = "product"
	entityTableDiscounts entityTable = "discount"
)

func (s *Server) listEntities(name entityTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, _ := entity.TableByName(string(name))
		rows, err := s.masterdata.List(c.Request.Context(), table)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": rows})
	}
}

func (s *Server) deleteEntity(name entityTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, _ := entity.TableByName(string(name))
		if err := s.masterdata.Delete(c.Request.Context(), table, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

type managerRequest struct {
	ID       string `json:"manager_id"`
	Name     string `json:"manager_name" binding:"required"`
	Location string `json:"manager_location"`
	Access   string `json:"access" binding:"required"`
}

func (r managerRequest) toEntity() entity.Manager {
	return entity.Manager{
		ID:       r.ID,
		Name:     r.Name,
		Location: r.Location,
		Access:   entity.AccessLevel(r.Access),
	}
}

func (s *Server) createManager(c *gin.Context) {
	var req managerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = s.genID.Generate().String()
	}
	if err := s.masterdata.Create(c.Request.Context(), req.toEntity()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"manager_id": req.ID})
}

func (s *Server) updateManager(c *gin.Context) {
	var req managerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	if err := s.masterdata.Update(c.Request.Context(), req.toEntity()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type customerRequest struct {
	ID            string  `json:"customer_id"`
	Name          string  `json:"customer_name" binding:"required"`
	Type          string  `json:"customer_type" binding:"required"`
	PricingFactor float64 `json:"pricing_factor"`
	Address       string  `json:"address"`
	PostCode      string  `json:"post_code"`
	Location      string  `json:"customer_location"`
	Email         string  `json:"email"`
	Telephone     string  `json:"telephone"`
	Code          string  `json:"customer_code"`
	VATCode       string  `json:"vat_code"`
	PaymentTerms  string  `json:"payment_terms"`
}

func (r customerRequest) toEntity() (entity.Customer, error) {
	terms := entity.TermsPrepaid
	if r.PaymentTerms != "" {
		parsed, err := entity.ParsePaymentTerms(r.PaymentTerms)
		if err != nil {
			return entity.Customer{}, err
		}
		terms = parsed
	}
	return entity.Customer{
		ID:            r.ID,
		Name:          r.Name,
		Type:          entity.CustomerType(r.Type),
		PricingFactor: r.PricingFactor,
		Address:       r.Address,
		PostCode:      r.PostCode,
		Location:      r.Location,
		Email:         r.Email,
		Telephone:     r.Telephone,
		Code:          r.Code,
		VATCode:       r.VATCode,
		PaymentTerms:  terms,
	}, nil
}

func (s *Server) createCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = s.genID.Generate().String()
	}
	customer, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.masterdata.Create(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer_id": req.ID})
}

func (s *Server) updateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	customer, err := req.toEntity()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.masterdata.Update(c.Request.Context(), customer); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type productRequest struct {
	ID           string  `json:"product_id"`
	Name         string  `json:"product_name" binding:"required"`
	Cost         float64 `json:"cost" binding:"required"`
	Category     string  `json:"product_category"`
	Manufacturer string  `json:"manufacturer"`
}

func (r productRequest) toEntity() entity.Product {
	return entity.Product{
		ID:           r.ID,
		Name:         r.Name,
		Cost:         r.Cost,
		Category:     r.Category,
		Manufacturer: r.Manufacturer,
	}
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID == "" {
		req.ID = s.genID.Generate().String()
	}
	if err := s.masterdata.Create(c.Request.Context(), req.toEntity()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product_id": req.ID})
}

func (s *Server) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = c.Param("id")
	if err := s.masterdata.Update(c.Request.Context(), req.toEntity()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type discountRequest struct {
	ID         string  `json:"discount_id"`
	Level      string  `json:"discount_level" binding:"required"`
	Identifier string  `json:"discount_identifier" binding:"required"`
	StartDate  string  `json:"start_date" binding:"required"`
	EndDate    string  `json:"end_date" binding:"required"`
	Percent    float64 `json:"discount_percent"`
}

func (s *Server) createDiscount(c *gin.Context) {
	var req discountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := entity.ParseDiscountLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := time.Parse(recorddomain.DateFormat, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := time.Parse(recorddomain.DateFormat, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ID == "" {
		req.ID = s.genID.Generate().String()
	}
	d := entity.Discount{
		ID:         req.ID,
		Level:      level,
		Identifier: req.Identifier,
		StartDate:  start,
		EndDate:    end,
		Percent:    req.Percent,
	}
	if err := s.masterdata.Create(c.Request.Context(), d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"discount_id": req.ID})
}

func (s *Server) discountIdentifiers(c *gin.Context) {
	level, err := entity.ParseDiscountLevel(c.Param("level"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	values, err := s.discounts.Identifiers(c.Request.Context(), level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"identifiers": values})
}

func (s *Server) productDiscounts(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(recorddomain.DateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		date = parsed
	}

	row, err := s.store.Get(c.Request.Context(), entity.ProductTable, c.Param("name"), true)
	if err != nil {
		respondError(c, err)
		return
	}

	active, err := s.discounts.ActiveForProduct(c.Request.Context(), entity.ProductFromRow(row), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": active})
}

func (s *Server) stockLevels(c *gin.Context) {
	levels, err := s.inventory.StockLevels(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": levels})
}
