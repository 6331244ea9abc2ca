package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/imkonsowa/restaurants-ordering/conversation"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/inventory"
	"github.com/imkonsowa/restaurants-ordering/kitchen"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/observability"
	"github.com/imkonsowa/restaurants-ordering/square"
)

type Inventory interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, in *models.Ingredient) error
	DeleteIngredient(ctx context.Context, name string) error
	UpdateIngredient(ctx context.Context, name string, in *models.Ingredient) error
	UpdateQuantity(ctx context.Context, name string, quantity float64) error
	UpdateShelfLife(ctx context.Context, name string, days int) error
}

type EventLog interface {
	ListRecent(ctx context.Context, kind string, limit int) ([]models.EventRecord, error)
}

type Agent struct {
	config     *config.Config
	inventory  Inventory
	square     *square.Client
	engine     *conversation.Engine
	summarizer *conversation.Summarizer
	kitchen    *kitchen.Kitchen
	events     events.Publisher
	eventLog   EventLog
	metrics    *observability.Metrics
	upgrader   websocket.Upgrader
}

func (a *Agent) Run() error {
	return a.Router().Run(a.config.Server.Address())
}

func (a *Agent) Router() *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization", "access-token", "location-id"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	customer := r.Group("/customer")
	customer.POST("/chat", a.chat)
	customer.GET("/chat/ws", a.chatWS)
	customer.POST("/order_summarization", a.orderSummarization)

	seller := r.Group("/seller")
	seller.POST("/recommend_menu", a.recommendMenu)
	seller.POST("/reengineer_dish", a.reengineerDish)
	seller.POST("/catalog_image_generator", a.catalogImageGenerator)
	seller.POST("/add_ingedients", a.createIngredient)
	seller.GET("/order_summaries", a.orderSummaries)

	ingredients := r.Group("/ingredients")
	ingredients.POST("/create", a.createIngredient)
	ingredients.POST("/read", a.listIngredients)
	ingredients.GET("/read", a.listIngredients)
	ingredients.POST("/delete", a.deleteIngredient)
	ingredients.POST("/update", a.updateIngredient)
	ingredients.POST("/update/quantity", a.updateQuantity)
	ingredients.POST("/update/shelf_life_days", a.updateShelfLife)

	catalog := r.Group("/catalog")
	catalog.POST("/create", a.createCatalogItem)
	catalog.POST("/list", a.listCatalog)
	catalog.POST("/delete", a.deleteCatalogObjects)
	catalog.POST("/create/image", a.createCatalogImage)

	order := r.Group("/order")
	order.POST("/create", a.createOrder)
	order.POST("/get", a.getOrder)
	order.POST("/pay", a.payOrder)

	payments := r.Group("/payments")
	payments.POST("/create", a.createPayment)
	payments.POST("/get", a.getPayment)
	payments.POST("/cancel", a.cancelPayment)
	payments.POST("/complete", a.completePayment)

	invoice := r.Group("/invoice")
	invoice.POST("/create_customer", a.createCustomer)
	invoice.POST("/create", a.createInvoice)
	invoice.POST("/get", a.getInvoice)
	invoice.POST("/publish", a.publishInvoice)
	invoice.POST("/cancel", a.cancelInvoice)

	return r
}

// squareFor returns a Square client carrying the caller's credential, taken
// from the access-token header or a bearer Authorization header.
func (a *Agent) squareFor(c *gin.Context) *square.Client {
	token := c.GetHeader("access-token")
	if token == "" {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}

	return a.square.WithToken(token)
}

// locationFor resolves the Square location of the request, looking it up
// when the location-id header is absent.
func (a *Agent) locationFor(c *gin.Context, client *square.Client) (string, error) {
	if id := c.GetHeader("location-id"); id != "" {
		return id, nil
	}

	id, err := client.FirstLocationID(c)
	if err != nil {
		slog.Error("failed to connect to square", "error", err)
		return "", apperrors.Upstream("square", "connecting to Square", err)
	}

	return id, nil
}

func (a *Agent) publish(ctx context.Context, kind string, payload any) {
	err := a.events.Publish(ctx, kind, payload)
	a.metrics.RecordEvent(kind, err)
	if err != nil {
		slog.Error("failed to publish event", "kind", kind, "error", err)
	}
}

// fail writes err as {"detail": ...} with the status its kind maps to.
func (a *Agent) fail(c *gin.Context, err error) {
	var validation *apperrors.ValidationError

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": validation.Error()})
	case errors.Is(err, inventory.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, inventory.ErrIngredientExists):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		service := apperrors.ServiceOf(err)
		if service == "" {
			service = "internal"
		}
		a.metrics.RecordUpstreamError(service)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

func (a *Agent) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return false
	}

	return true
}
