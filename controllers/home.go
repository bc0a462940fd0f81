package controllers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/CorrelAid/function_relay/functions"
	"github.com/CorrelAid/function_relay/logger"
	"github.com/CorrelAid/function_relay/models"
	"github.com/CorrelAid/function_relay/operations"
	"github.com/CorrelAid/function_relay/validators"
	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-memdb"
)

// LandingRoute is where every relay redirects to once it is done or skipped.
const LandingRoute = "/"

const recentRelays = 20

//go:embed templates/*
var templates embed.FS

type HomeController struct {
	Blobs  functions.BlobService
	Tables functions.TableService
	Queue  functions.QueueService
	Files  functions.FileService

	// DB is the relay journal. Nil disables journaling.
	DB        *memdb.MemDB
	Retention time.Duration

	ImageContainer string
	ContractShare  string

	// TurnstileSiteKey renders the captcha widget on the landing page forms.
	TurnstileSiteKey string
}

// Register mounts the landing page and the four relay routes. protect runs
// before the relay handlers only.
func (h *HomeController) Register(r *gin.Engine, protect ...gin.HandlerFunc) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.tmpl")))

	r.GET(LandingRoute, h.Index)

	relay := r.Group("/", protect...)
	relay.POST("/UploadImage", h.UploadImage)
	relay.POST("/AddCustomerProfile", h.AddCustomerProfile)
	relay.POST("/ProcessOrder", h.ProcessOrder)
	relay.POST("/UploadContract", h.UploadContract)
}

func (h *HomeController) Index(c *gin.Context) {
	var relays []*models.Relay
	if h.DB != nil {
		var err error
		if relays, err = operations.RecentRelays(h.DB, recentRelays); err != nil {
			logger.Warn("listing relays failed", "err", err)
		}
	}
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Relays":  relays,
		"SiteKey": h.TurnstileSiteKey,
	})
}

func (h *HomeController) UploadImage(c *gin.Context) {
	h.relayFile(c, models.OperationImage, func(file models.UploadedFile) error {
		return h.Blobs.UploadBlob(c.Request.Context(), h.ImageContainer, file.Name, file)
	})
}

func (h *HomeController) UploadContract(c *gin.Context) {
	h.relayFile(c, models.OperationContract, func(file models.UploadedFile) error {
		return h.Files.UploadFile(c.Request.Context(), h.ContractShare, file.Name, file)
	})
}

func (h *HomeController) AddCustomerProfile(c *gin.Context) {
	profile, err := validators.BindProfile(c)
	if err != nil {
		logger.Debug("profile failed validation", "err", err)
		h.done(c, models.OperationProfile, "", models.OutcomeSkipped)
		return
	}

	if err := h.Tables.StoreProfile(c.Request.Context(), profile); err != nil {
		h.fail(c, models.OperationProfile, "", err)
		return
	}
	h.done(c, models.OperationProfile, "", models.OutcomeRelayed)
}

func (h *HomeController) ProcessOrder(c *gin.Context) {
	order := models.OrderReference{OrderID: c.PostForm("orderId")}

	if err := h.Queue.SendOrder(c.Request.Context(), order); err != nil {
		h.fail(c, models.OperationOrder, order.OrderID, err)
		return
	}
	h.done(c, models.OperationOrder, order.OrderID, models.OutcomeRelayed)
}

// relayFile opens the upload in the "file" field and hands it to send. The
// stream is closed before returning on every path.
func (h *HomeController) relayFile(c *gin.Context, operation string, send func(models.UploadedFile) error) {
	header, err := validators.FormFile(c, "file")
	if err != nil {
		if !errors.Is(err, validators.ErrNoFile) {
			logger.Debug("reading upload failed", "operation", operation, "err", err)
		}
		h.done(c, operation, "", models.OutcomeSkipped)
		return
	}

	src, err := header.Open()
	if err != nil {
		h.fail(c, operation, header.Filename, err)
		return
	}
	defer src.Close()

	err = send(models.UploadedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        src,
	})
	if err != nil {
		h.fail(c, operation, header.Filename, err)
		return
	}
	h.done(c, operation, header.Filename, models.OutcomeRelayed)
}

func (h *HomeController) done(c *gin.Context, operation, target, outcome string) {
	h.record(operation, target, outcome)
	logger.Info("relay finished", "operation", operation, "target", target, "outcome", outcome)
	c.Redirect(http.StatusFound, LandingRoute)
}

// fail ends the request with a bare 500; the cause is only logged.
func (h *HomeController) fail(c *gin.Context, operation, target string, err error) {
	h.record(operation, target, models.OutcomeFailed)
	logger.Error("relay failed", "operation", operation, "target", target, "err", err)
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (h *HomeController) record(operation, target, outcome string) {
	if h.DB == nil {
		return
	}
	if _, err := operations.InsertRelay(h.DB, operation, target, outcome, time.Now(), h.Retention); err != nil {
		logger.Warn("journal write failed", "operation", operation, "err", err)
	}
}
