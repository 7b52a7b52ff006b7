package purchases

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/valeevte/PurchaseReport/internal/logging"
)

const liveMessage = "User management server is running"

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register вешает маршруты на роутер.
func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Root)
	r.GET("/fetch-and-store", h.FetchAndStore)
	r.GET("/data", h.Data)
	r.GET("/top-purchasers", h.TopPurchasers)
	r.GET("/healthz", h.Health)
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, liveMessage)
}

func (h *Handler) FetchAndStore(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.svc.FetchAndStore(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("kind", ErrorKind(err)).Msg("error fetching and storing data")
		c.String(http.StatusInternalServerError, "Error fetching and storing data")
		return
	}
	logging.Ctx(ctx).Info().Int("records", len(report.Items)).Msg("purchases replaced")
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Data(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.svc.Data(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("kind", ErrorKind(err)).Msg("error show data")
		c.String(http.StatusInternalServerError, "Error show data")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) TopPurchasers(c *gin.Context) {
	ctx := c.Request.Context()
	report, err := h.svc.TopPurchasers(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("kind", ErrorKind(err)).Msg("error retrieving top purchasers")
		c.String(http.StatusInternalServerError, "Error retrieving top purchasers")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Ping(c.Request.Context()); err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
