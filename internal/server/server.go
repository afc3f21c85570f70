// Package server exposes the back-office operations over a thin JSON/CSV
// HTTP surface. The interactive UI consuming it lives elsewhere.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/medexy/sandelia/internal/config"
	"github.com/medexy/sandelia/internal/discount"
	"github.com/medexy/sandelia/internal/inventory"
	"github.com/medexy/sandelia/internal/masterdata"
	"github.com/medexy/sandelia/internal/order"
	recorddomain "github.com/medexy/sandelia/internal/recordlog/domain"
	"github.com/medexy/sandelia/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type ServerParams struct {
	fx.In

	Engine     *gin.Engine
	Log        *zap.Logger
	GenID      *snowflake.Node
	Store      *store.Store
	Masterdata *masterdata.Service
	Orders     *order.Service
	Inventory  *inventory.Service
	Discounts  *discount.Service
}

type Server struct {
	engine     *gin.Engine
	log        *zap.Logger
	genID      *snowflake.Node
	store      *store.Store
	masterdata *masterdata.Service
	orders     *order.Service
	inventory  *inventory.Service
	discounts  *discount.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:     p.Engine,
		log:        p.Log.Named("server"),
		genID:      p.GenID,
		store:      p.Store,
		masterdata: p.Masterdata,
		orders:     p.Orders,
		inventory:  p.Inventory,
		discounts:  p.Discounts,
	}
}

func (s *Server) RegisterRoutes() {
	api := s.engine.Group("/api")

	api.GET("/managers", s.listEntities(entityTableManagers))
	api.POST("/managers", s.createManager)
	api.PUT("/managers/:id", s.updateManager)
	api.DELETE("/managers/:id", s.deleteEntity(entityTableManagers))

	api.GET("/customers", s.listEntities(entityTableCustomers))
	api.POST("/customers", s.createCustomer)
	api.PUT("/customers/:id", s.updateCustomer)
	api.DELETE("/customers/:id", s.deleteEntity(entityTableCustomers))

	api.GET("/products", s.listEntities(entityTableProducts))
	api.POST("/products", s.createProduct)
	api.PUT("/products/:id", s.updateProduct)
	api.DELETE("/products/:id", s.deleteEntity(entityTableProducts))
	api.GET("/products/:name/discounts", s.productDiscounts)

	api.GET("/discounts", s.listEntities(entityTableDiscounts))
	api.POST("/discounts", s.createDiscount)
	api.DELETE("/discounts/:id", s.deleteEntity(entityTableDiscounts))
	api.GET("/discounts/identifiers/:level", s.discountIdentifiers)

	api.GET("/inventory", s.stockLevels)

	api.GET("/orders", s.listOrders)
	api.POST("/orders", s.submitOrder)
	api.POST("/orders/preview", s.previewOrder)
	api.GET("/orders/:id", s.getOrder)
	api.PUT("/orders/:id", s.updateOrder)
	api.DELETE("/orders/:id", s.deleteOrder)

	api.GET("/tables/:name/export", s.exportTable)
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recorddomain.ErrNotFound),
		errors.Is(err, order.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, recorddomain.ErrSchemaMismatch),
		errors.Is(err, recorddomain.ErrEmptyAppend),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, masterdata.ErrMissingID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
