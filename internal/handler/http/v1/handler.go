package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/apperr"
	"github.com/shenikar/emergency_dispatch_system/internal/config"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	incidentService service.IncidentService
	dispatchService service.DispatchService
	catalogService  service.CatalogService
	logger          *logrus.Logger
	validate        *validator.Validate
	cfg             *config.Config
}

func NewHandler(incidentService service.IncidentService, dispatchService service.DispatchService, catalogService service.CatalogService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		incidentService: incidentService,
		dispatchService: dispatchService,
		catalogService:  catalogService,
		logger:          logger,
		validate:        validator.New(),
		cfg:             cfg,
	}
}

// respondError преобразует доменную ошибку в HTTP-ответ
func respondError(c *gin.Context, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.CodeValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.CodeInvalidTransition, apperr.CodeInvalidState, apperr.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Create a new incident
// @Description Register a new emergency incident. The incident always starts in the "reported" status. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param incident body CreateIncidentRequest true "Incident creation request"
// @Success 201 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToIncidentModel(input)
	if err := h.incidentService.CreateIncident(c.Request.Context(), model); err != nil {
		log.WithError(err).Warn("Failed to create incident in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToIncidentResponse(model))
}

// @Summary Get a list of incidents
// @Description Get a paginated list of all incidents, newest first. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(10)
// @Success 200 {array} IncidentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	incidents, err := h.incidentService.ListIncidents(c.Request.Context(), page, pageSize)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToIncidentResponses(incidents))
}

// @Summary Get incident by ID
// @Description Get a single incident by its ID. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidentService.GetIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get incident from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Advance incident status
// @Description Advance an incident to a new status according to the lifecycle graph. Terminal statuses accept no further transitions. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Param transition body AdvanceStatusRequest true "Status transition request"
// @Success 200 {object} IncidentResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/status [post]
func (h *Handler) advanceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "advanceStatus").WithField("id", id)

	var input AdvanceStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident, err := h.incidentService.AdvanceStatus(c.Request.Context(), id, input.NewStatus, input.ActorID, input.ChangedByID, input.Motive)
	if err != nil {
		log.WithError(err).Warn("Failed to advance incident status in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToIncidentResponse(incident))
}

// @Summary Get incident status history
// @Description Get the immutable status change log of an incident, oldest first. Requires API key.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} HistoryEntryResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/history [get]
func (h *Handler) listHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listHistory").WithField("id", id)

	entries, err := h.incidentService.ListHistory(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to list history from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToHistoryEntryResponses(entries))
}

// @Summary List dispatches of an incident
// @Description Get all response service dispatches assigned to an incident. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Incident ID"
// @Success 200 {array} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id}/dispatches [get]
func (h *Handler) listIncidentDispatches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listIncidentDispatches").WithField("id", id)

	dispatches, err := h.dispatchService.ListByIncident(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to list dispatches from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToDispatchResponses(dispatches))
}

// @Summary Create a dispatch
// @Description Assign a response service to an incident. Fails if the incident is already in a terminal status. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param dispatch body CreateDispatchRequest true "Dispatch creation request"
// @Success 201 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 409 {object} map[string]string "Incident is in a terminal status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dispatches [post]
func (h *Handler) createDispatch(c *gin.Context) {
	var input CreateDispatchRequest
	log := h.logger.WithField("method", "createDispatch")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model, err := DTOToDispatchModel(input)
	if err != nil {
		log.WithError(err).Warn("Failed to parse dispatch request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.dispatchService.CreateDispatch(c.Request.Context(), model); err != nil {
		log.WithError(err).Warn("Failed to create dispatch in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToDispatchResponse(model))
}

// @Summary Get dispatch by ID
// @Description Get a single dispatch by its ID. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dispatch ID"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid dispatch ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Dispatch not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dispatches/{id} [get]
func (h *Handler) getDispatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	log := h.logger.WithField("method", "getDispatch").WithField("id", id)

	dispatch, err := h.dispatchService.GetDispatch(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get dispatch from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(dispatch))
}

// @Summary Record dispatch arrival
// @Description Record the arrival of a dispatched service. Response time in whole minutes is derived from the assignment and arrival timestamps. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dispatch ID"
// @Param arrival body RecordArrivalRequest true "Arrival request"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Dispatch not found"
// @Failure 409 {object} map[string]string "Dispatch is not in the assigned status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dispatches/{id}/arrival [post]
func (h *Handler) recordArrival(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	log := h.logger.WithField("method", "recordArrival").WithField("id", id)

	var input RecordArrivalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	arrivedAt, err := time.Parse(time.RFC3339, input.ArrivedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid arrived_at timestamp"})
		return
	}

	dispatch, err := h.dispatchService.RecordArrival(c.Request.Context(), id, arrivedAt)
	if err != nil {
		log.WithError(err).Warn("Failed to record arrival in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(dispatch))
}

// @Summary Complete a dispatch
// @Description Complete a dispatch with an optional quality score between 1 and 5. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dispatch ID"
// @Param completion body CompleteDispatchRequest true "Completion request"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Dispatch not found"
// @Failure 409 {object} map[string]string "Dispatch is not in the en_route status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dispatches/{id}/complete [post]
func (h *Handler) completeDispatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	log := h.logger.WithField("method", "completeDispatch").WithField("id", id)

	var input CompleteDispatchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completedAt, err := time.Parse(time.RFC3339, input.CompletedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid completed_at timestamp"})
		return
	}

	dispatch, err := h.dispatchService.CompleteDispatch(c.Request.Context(), id, completedAt, input.QualityScore)
	if err != nil {
		log.WithError(err).Warn("Failed to complete dispatch in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(dispatch))
}

// @Summary Cancel a dispatch
// @Description Cancel a dispatch from the assigned or en_route status. Requires API key.
// @Tags Dispatches
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Dispatch ID"
// @Success 200 {object} DispatchResponse
// @Failure 400 {object} map[string]string "Invalid dispatch ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Dispatch not found"
// @Failure 409 {object} map[string]string "Cancellation not allowed from the current status"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dispatches/{id}/cancel [post]
func (h *Handler) cancelDispatch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dispatch ID"})
		return
	}
	log := h.logger.WithField("method", "cancelDispatch").WithField("id", id)

	dispatch, err := h.dispatchService.CancelDispatch(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to cancel dispatch in service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToDispatchResponse(dispatch))
}

// @Summary List emergency types
// @Description Get all emergency type reference records. Requires API key.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} EmergencyTypeResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/emergency-types [get]
func (h *Handler) listEmergencyTypes(c *gin.Context) {
	log := h.logger.WithField("method", "listEmergencyTypes")

	types, err := h.catalogService.ListEmergencyTypes(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list emergency types from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToEmergencyTypeResponses(types))
}

// @Summary Get emergency type by ID
// @Description Get a single emergency type reference record. Requires API key.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Emergency type ID"
// @Success 200 {object} EmergencyTypeResponse
// @Failure 400 {object} map[string]string "Invalid emergency type ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Emergency type not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/emergency-types/{id} [get]
func (h *Handler) getEmergencyType(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid emergency type ID"})
		return
	}
	log := h.logger.WithField("method", "getEmergencyType").WithField("id", id)

	et, err := h.catalogService.GetEmergencyType(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency type from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToEmergencyTypeResponse(et))
}

// @Summary List response services
// @Description Get all response service reference records. Requires API key.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} ResponseServiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/services [get]
func (h *Handler) listServices(c *gin.Context) {
	log := h.logger.WithField("method", "listServices")

	services, err := h.catalogService.ListServices(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list response services from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToResponseServiceResponses(services))
}

// @Summary Get response service by ID
// @Description Get a single response service reference record. Requires API key.
// @Tags Catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Response service ID"
// @Success 200 {object} ResponseServiceResponse
// @Failure 400 {object} map[string]string "Invalid response service ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Response service not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /catalog/services/{id} [get]
func (h *Handler) getService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid response service ID"})
		return
	}
	log := h.logger.WithField("method", "getService").WithField("id", id)

	svc, err := h.catalogService.GetService(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get response service from service")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToResponseServiceResponse(svc))
}

// @Summary Get incident statistics
// @Description Get the count of incidents reported within the configured time window. Requires API key.
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} StatsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/stats [get]
func (h *Handler) getStats(c *gin.Context) {
	log := h.logger.WithField("method", "getStats")

	incidentCount, err := h.incidentService.GetStats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get stats from service")
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatsResponse{IncidentCount: incidentCount})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
