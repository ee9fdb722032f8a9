package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"orders-backend/internal/config"
	"orders-backend/internal/domain"
	"orders-backend/internal/metrics"
	"orders-backend/internal/usecase"
)

type Server struct {
	cfg    config.Config
	orders *usecase.OrderService
	m      *metrics.ServerMetrics
	engine *gin.Engine
}

func New(cfg config.Config, orders *usecase.OrderService, m *metrics.ServerMetrics) *Server {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		cfg:    cfg,
		orders: orders,
		m:      m,
		engine: gin.New(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() {
	s.engine.Use(gin.Recovery())
	if s.m != nil {
		s.engine.Use(Metrics(s.m))
		s.engine.GET("/metrics", gin.WrapH(s.m.Handler()))
	}
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	if s.cfg.JWTSecret != "" {
		api.Use(Auth(s.cfg.JWTSecret))
	}
	api.POST("/orders", s.createOrder)
	api.GET("/orders", s.listOrders)
	api.GET("/orders/:id", s.getOrder)
	api.PATCH("/orders/:id/status", s.changeStatus)
}

type orderItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type createOrderReq struct {
	Items []orderItemReq `json:"items" binding:"required,min=1,dive"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "items must be a non-empty list with positive quantities")
		return
	}
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	o, err := s.orders.Create(c.Request.Context(), items)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

type listOrdersReq struct {
	Page   int    `form:"page,default=1" binding:"min=1"`
	Limit  int    `form:"limit,default=10" binding:"min=1"`
	Status string `form:"status"`
}

func (s *Server) listOrders(c *gin.Context) {
	var req listOrdersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "page and limit must be >= 1")
		return
	}
	var status *domain.OrderStatus
	if req.Status != "" {
		st, ok := domain.ParseOrderStatus(req.Status)
		if !ok {
			s.err(c, http.StatusBadRequest, "BadRequest", "status must be one of "+statusList())
			return
		}
		status = &st
	}
	page, err := s.orders.FindAll(c.Request.Context(), req.Page, req.Limit, status)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type changeStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) changeStatus(c *gin.Context) {
	var req changeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.err(c, http.StatusBadRequest, "BadRequest", "status is required")
		return
	}
	st, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		s.err(c, http.StatusBadRequest, "BadRequest", "status must be one of "+statusList())
		return
	}
	o, err := s.orders.ChangeStatus(c.Request.Context(), c.Param("id"), st)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// fail maps usecase errors to the transport envelope. Every error class
// surfaces with its original message; nothing is swallowed here.
func (s *Server) fail(c *gin.Context, err error) {
	var (
		notFound   usecase.ErrNotFound
		badRequest usecase.ErrBadRequest
		unknown    usecase.ErrUnknownProduct
		upstream   usecase.ErrUpstream
		storage    usecase.ErrStorage
	)
	switch {
	case errors.As(err, &notFound):
		s.err(c, http.StatusNotFound, "NotFound", err.Error())
	case errors.As(err, &badRequest):
		s.err(c, http.StatusBadRequest, "BadRequest", err.Error())
	case errors.As(err, &unknown):
		s.err(c, http.StatusBadRequest, "BadRequest", err.Error())
	case errors.As(err, &upstream):
		s.err(c, http.StatusBadGateway, "UpstreamUnavailable", err.Error())
	case errors.As(err, &storage):
		s.err(c, http.StatusInternalServerError, "ServerError", err.Error())
	default:
		s.err(c, http.StatusInternalServerError, "ServerError", err.Error())
	}
}

func (s *Server) err(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": msg,
		},
	})
}

func statusList() string {
	out := ""
	for i, st := range domain.OrderStatusList {
		if i > 0 {
			out += ", "
		}
		out += string(st)
	}
	return out
}
