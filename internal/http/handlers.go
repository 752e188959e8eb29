package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"pharmapos/internal/domain"
	"pharmapos/internal/repository"
	"pharmapos/internal/service"
)

type Server struct {
	engine   *gin.Engine
	catalog  *service.CatalogService
	cart     *service.CartService
	checkout *service.CheckoutService
	sales    *service.SalesService
	overview *service.OverviewService
	notifier *service.Notifier
}

func NewServer(
	catalog *service.CatalogService,
	cart *service.CartService,
	checkout *service.CheckoutService,
	sales *service.SalesService,
	overview *service.OverviewService,
	notifier *service.Notifier,
	logger *zap.Logger,
) *Server {
	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())
	s := &Server{
		engine:   r,
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		sales:    sales,
		overview: overview,
		notifier: notifier,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

// requestLogger структурный access-лог вместо gin.Logger()
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)
		products.POST(":id/restock", s.restockProduct)

		cart := v1.Group("/cart")
		cart.GET("", s.getCart)
		cart.POST("/items", s.addCartItem)
		cart.PUT("/items/:productId", s.updateCartItem)
		cart.DELETE("/items/:productId", s.removeCartItem)

		v1.POST("/checkout", s.commitSale)
		v1.GET("/sales", s.listSales)
		v1.GET("/notification", s.currentNotification)
		v1.GET("/overview", s.getOverview)
	}
}

// Product handlers

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category"
// @Param low_stock query bool false "Only items at or below reorder point"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f repository.ProductFilter
	if q := c.Query("q"); q != "" {
		f.NameSubstring = q
	}
	if v := c.Query("category"); v != "" {
		cat := domain.ProductCategory(v)
		if !domain.ValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
			return
		}
		f.Category = &cat
	}
	if v := c.Query("low_stock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.LowStockOnly = b
		}
	}
	list, err := s.catalog.List(c, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := s.catalog.GetByID(c, id)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

type restockReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Restock product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body restockReq true "Restock"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /products/{id}/restock [post]
func (s *Server) restockProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req restockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p, err := s.catalog.Restock(c, id, req.Quantity)
	if err != nil {
		s.failBusiness(c, err)
		return
	}
	if p == nil {
		// неизвестный товар — тихий no-op по контракту
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Cart handlers

type cartView struct {
	Items    []domain.ResolvedCartItem `json:"items"`
	Subtotal decimal.Decimal           `json:"subtotal"`
	Tax      decimal.Decimal           `json:"tax"`
	Total    decimal.Decimal           `json:"total"`
}

// @Summary Resolved cart with running totals
// @Tags cart
// @Produce json
// @Success 200 {object} cartView
// @Router /cart [get]
func (s *Server) getCart(c *gin.Context) {
	items, err := s.cart.Resolve(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	view := cartView{Items: items, Subtotal: decimal.Zero}
	for _, it := range items {
		view.Subtotal = view.Subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	view.Tax = view.Subtotal.Mul(service.TaxRate)
	view.Total = view.Subtotal.Add(view.Tax)
	c.JSON(http.StatusOK, view)
}

type addCartItemReq struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Dosage    string `json:"dosage"`
	Notes     string `json:"notes"`
}

// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Param input body addCartItemReq true "Item"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.cart.AddItem(c, req.ProductID, req.Quantity, req.Dosage, req.Notes); err != nil {
		s.failBusiness(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type updateCartItemReq struct {
	Quantity int64 `json:"quantity"`
}

// @Summary Update cart item quantity
// @Tags cart
// @Accept json
// @Param productId path int true "Product ID"
// @Param input body updateCartItemReq true "Quantity"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	id, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.cart.UpdateQuantity(c, id, req.Quantity); err != nil {
		s.failBusiness(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove cart item
// @Tags cart
// @Param productId path int true "Product ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /cart/items/{productId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	id, err := parseID(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.cart.RemoveItem(c, id); err != nil {
		s.failBusiness(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout handlers

type checkoutReq struct {
	CustomerName       string `json:"customer_name"`
	PrescriptionNumber string `json:"prescription_number"`
	PaymentMethod      string `json:"payment_method"`
	Notes              string `json:"notes"`
}

// @Summary Commit sale
// @Tags checkout
// @Accept json
// @Produce json
// @Param input body checkoutReq true "Checkout"
// @Success 201 {object} domain.SaleRecord
// @Success 204 "Empty cart, nothing to commit"
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /checkout [post]
func (s *Server) commitSale(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	rec, err := s.checkout.Commit(c, service.CheckoutInput{
		CustomerName:       req.CustomerName,
		PrescriptionNumber: req.PrescriptionNumber,
		PaymentMethod:      domain.PaymentMethod(req.PaymentMethod),
		Notes:              req.Notes,
	})
	if err != nil {
		s.failBusiness(c, err)
		return
	}
	if rec == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// Sales handlers

// @Summary List sales, most recent first
// @Tags sales
// @Produce json
// @Param limit query int false "Return only the n most recent"
// @Success 200 {array} domain.SaleRecord
// @Router /sales [get]
func (s *Server) listSales(c *gin.Context) {
	var (
		list []domain.SaleRecord
		err  error
	)
	if v := c.Query("limit"); v != "" {
		n, perr := strconv.Atoi(v)
		if perr != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		list, err = s.sales.Recent(c, n)
	} else {
		list, err = s.sales.List(c)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Current notification slot
// @Tags notification
// @Produce json
// @Success 200 {object} domain.Notification
// @Success 204 "No active notification"
// @Router /notification [get]
func (s *Server) currentNotification(c *gin.Context) {
	n := s.notifier.Current()
	if n == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, n)
}

// @Summary Overview stats
// @Tags overview
// @Produce json
// @Success 200 {object} domain.Overview
// @Router /overview [get]
func (s *Server) getOverview(c *gin.Context) {
	ov, err := s.overview.Overview(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ov)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// failBusiness переводит бизнес-ошибку в HTTP-статус и публикует
// error-уведомление; сами сервисы ошибки не рисуют
func (s *Server) failBusiness(c *gin.Context, err error) {
	s.notifier.Error(err.Error())
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPrescriptionRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
