package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/logger"
	"github.com/leadlane/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// TenantHeader identifies the tenant on unauthenticated webhook deliveries
const TenantHeader = "X-Tenant-Id"

// DefaultWebhookBodyLimit caps webhook bodies at 1 MiB
const DefaultWebhookBodyLimit int64 = 1 << 20

// WebhookVerifier checks a delivery's signature headers against the raw body
type WebhookVerifier interface {
	RequestURI(path, rawQuery string) string
	Verify(method, requestURI string, header http.Header, body []byte) error
}

// HubSpotEventProcessor applies a batch of HubSpot events for one tenant
type HubSpotEventProcessor interface {
	ProcessHubSpotEvents(ctx context.Context, tenantID uuid.UUID, raw []map[string]any) (*crmsync.WebhookBatchResult, error)
}

// CRMWebhookHandler receives inbound CRM webhooks
type CRMWebhookHandler struct {
	BaseHandler
	verifier  WebhookVerifier
	processor HubSpotEventProcessor
	maxBody   int64
}

// NewCRMWebhookHandler creates a new CRMWebhookHandler. maxBody <= 0 selects 1 MiB.
func NewCRMWebhookHandler(verifier WebhookVerifier, processor HubSpotEventProcessor, maxBody int64) *CRMWebhookHandler {
	if maxBody <= 0 {
		maxBody = DefaultWebhookBodyLimit
	}
	return &CRMWebhookHandler{verifier: verifier, processor: processor, maxBody: maxBody}
}

// Receive godoc
// @Summary      Receive a CRM webhook
// @Description  Verifies the delivery signature and applies the events to linked records. Authenticated by signature only.
// @Tags         crm-webhooks
// @Accept       json
// @Produce      json
// @Param        crm_system path string true "CRM system" Enums(hubspot, salesforce, pipedrive, sap_b1)
// @Param        X-Tenant-Id header string true "Tenant ID" format(uuid)
// @Param        X-HubSpot-Signature-v3 header string false "HubSpot v3 signature"
// @Param        X-HubSpot-Request-Timestamp header string false "Signature timestamp in milliseconds"
// @Param        request body []object true "HubSpot events"
// @Success      200 {object} dto.WebhookAck
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      501 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /crm/webhooks/{crm_system} [post]
func (h *CRMWebhookHandler) Receive(c *gin.Context) {
	rawTenant := c.GetHeader(TenantHeader)
	if rawTenant == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationRequired, "Missing X-Tenant-Id header")
		return
	}
	tenantID, err := uuid.Parse(rawTenant)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidationFormat, "Invalid X-Tenant-Id header")
		return
	}
	system, err := pathSystem(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ctx, log := logger.WithTenantID(c.Request.Context(), logger.FromContext(c.Request.Context()), tenantID.String())
	log = log.With(zap.String("crm_system", string(system)))

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Webhook body exceeds the size limit")
			return
		}
		h.BadRequest(c, "Failed to read request body")
		return
	}

	if system != crm.SystemHubSpot {
		h.Error(c, http.StatusNotImplemented, dto.ErrCodeNotImplemented,
			"Webhook handling for CRM system '"+string(system)+"' is not implemented")
		return
	}

	requestURI := h.verifier.RequestURI(c.Request.URL.Path, c.Request.URL.RawQuery)
	if err := h.verifier.Verify(c.Request.Method, requestURI, c.Request.Header, body); err != nil {
		if errors.Is(err, crm.ErrMissingSecret) {
			log.Error("Webhook secret is not configured")
			h.Error(c, http.StatusInternalServerError, dto.ErrCodeWebhookSecretMissing, "Webhook secret not configured")
			return
		}
		log.Warn("Webhook signature rejected", zap.Error(err))
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeWebhookSignature, "Invalid webhook signature")
		return
	}

	events, err := decodeHubSpotEvents(body)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	result, err := h.processor.ProcessHubSpotEvents(ctx, tenantID, events)
	if err != nil {
		if errors.Is(err, crmsync.ErrInvalidWebhookPayload) || errors.Is(err, crm.ErrMissingEventID) {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, err.Error())
			return
		}
		h.HandleError(c, err)
		return
	}
	log.Info("Webhook delivery handled",
		zap.Int("received", result.Received),
		zap.Int("processed", result.Processed),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))

	c.JSON(http.StatusOK, dto.WebhookAck{Status: "ok", ProcessedEvents: len(events)})
}

var (
	errInvalidWebhookJSON = errors.New("invalid JSON payload")
	errEventsNotList      = errors.New("expected a list of events for HubSpot webhook payload")
	errEventNotObject     = errors.New("each HubSpot event must be a JSON object")
)

// decodeHubSpotEvents accepts a bare event array or an {"events": [...]} envelope
func decodeHubSpotEvents(body []byte) ([]map[string]any, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errInvalidWebhookJSON
	}

	var rawEvents []any
	switch v := payload.(type) {
	case []any:
		rawEvents = v
	case map[string]any:
		switch inner := v["events"].(type) {
		case nil:
			rawEvents = nil
		case []any:
			rawEvents = inner
		default:
			return nil, errEventsNotList
		}
	default:
		return nil, errEventsNotList
	}

	events := make([]map[string]any, 0, len(rawEvents))
	for _, raw := range rawEvents {
		ev, ok := raw.(map[string]any)
		if !ok {
			return nil, errEventNotObject
		}
		events = append(events, ev)
	}
	return events, nil
}
