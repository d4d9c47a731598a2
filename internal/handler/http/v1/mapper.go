package v1

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// DTOToIncidentModel преобразует DTO регистрации инцидента в доменную модель.
// Статус и время закрытия намеренно не переносятся: их выставляет координатор.
func DTOToIncidentModel(dto CreateIncidentRequest) *models.Incident {
	return &models.Incident{
		Code:            dto.Code,
		ReporterID:      dto.ReporterID,
		EmergencyTypeID: dto.EmergencyTypeID,
		TypeLabel:       dto.TypeLabel,
		Location:        dto.Location,
		Latitude:        dto.Latitude,
		Longitude:       dto.Longitude,
		Description:     dto.Description,
		Priority:        dto.Priority,
		FiledByID:       dto.FiledByID,
		Observations:    dto.Observations,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:              model.ID,
		Code:            model.Code,
		ReporterID:      model.ReporterID,
		EmergencyTypeID: model.EmergencyTypeID,
		TypeLabel:       model.TypeLabel,
		Status:          model.Status,
		Location:        model.Location,
		Latitude:        model.Latitude,
		Longitude:       model.Longitude,
		Description:     model.Description,
		Priority:        model.Priority,
		FiledByID:       model.FiledByID,
		Observations:    model.Observations,
		ReportedAt:      model.ReportedAt,
		ClosedAt:        model.ClosedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToHistoryEntryResponse преобразует запись журнала в DTO для ответа
func ModelToHistoryEntryResponse(model *models.HistoryEntry) *HistoryEntryResponse {
	return &HistoryEntryResponse{
		ID:             model.ID,
		IncidentID:     model.IncidentID,
		ActorID:        model.ActorID,
		PreviousStatus: model.PreviousStatus,
		NewStatus:      model.NewStatus,
		ChangedByID:    model.ChangedByID,
		Motive:         model.Motive,
		ChangedAt:      model.ChangedAt,
	}
}

// ModelsToHistoryEntryResponses преобразует слайс записей журнала в слайс DTO
func ModelsToHistoryEntryResponses(models []*models.HistoryEntry) []*HistoryEntryResponse {
	responses := make([]*HistoryEntryResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToHistoryEntryResponse(model)
	}
	return responses
}

// DTOToDispatchModel преобразует DTO назначения в доменную модель.
// Идентификаторы и метки времени приходят строками и разбираются до
// обращения к координатору.
func DTOToDispatchModel(dto CreateDispatchRequest) (*models.Dispatch, error) {
	incidentID, err := uuid.Parse(dto.IncidentID)
	if err != nil {
		return nil, fmt.Errorf("invalid incident_id: %w", err)
	}

	dispatch := &models.Dispatch{
		IncidentID:   incidentID,
		ServiceID:    dto.ServiceID,
		ExternalRef:  dto.ExternalRef,
		Observations: dto.Observations,
	}

	if dto.AssignedAt != "" {
		assignedAt, err := time.Parse(time.RFC3339, dto.AssignedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid assigned_at timestamp: %w", err)
		}
		dispatch.AssignedAt = assignedAt
	}
	return dispatch, nil
}

// ModelToDispatchResponse преобразует доменную модель назначения в DTO для ответа
func ModelToDispatchResponse(model *models.Dispatch) *DispatchResponse {
	return &DispatchResponse{
		ID:              model.ID,
		IncidentID:      model.IncidentID,
		ServiceID:       model.ServiceID,
		ExternalRef:     model.ExternalRef,
		Status:          model.Status,
		AssignedAt:      model.AssignedAt,
		ArrivedAt:       model.ArrivedAt,
		CompletedAt:     model.CompletedAt,
		Observations:    model.Observations,
		ResponseMinutes: model.ResponseMinutes,
		QualityScore:    model.QualityScore,
	}
}

// ModelsToDispatchResponses преобразует слайс назначений в слайс DTO
func ModelsToDispatchResponses(models []*models.Dispatch) []*DispatchResponse {
	responses := make([]*DispatchResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToDispatchResponse(model)
	}
	return responses
}

// ModelToEmergencyTypeResponse преобразует справочную запись типа в DTO
func ModelToEmergencyTypeResponse(model *models.EmergencyType) *EmergencyTypeResponse {
	return &EmergencyTypeResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Priority:    model.Priority,
		Active:      model.Active,
	}
}

// ModelsToEmergencyTypeResponses преобразует слайс типов в слайс DTO
func ModelsToEmergencyTypeResponses(models []*models.EmergencyType) []*EmergencyTypeResponse {
	responses := make([]*EmergencyTypeResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToEmergencyTypeResponse(model)
	}
	return responses
}

// ModelToResponseServiceResponse преобразует справочную запись службы в DTO
func ModelToResponseServiceResponse(model *models.ResponseService) *ResponseServiceResponse {
	return &ResponseServiceResponse{
		ID:        model.ID,
		Name:      model.Name,
		Category:  model.Category,
		Phone:     model.Phone,
		Available: model.Available,
		Address:   model.Address,
		Capacity:  model.Capacity,
		Schedule:  model.Schedule,
		Specialty: model.Specialty,
		Active:    model.Active,
	}
}

// ModelsToResponseServiceResponses преобразует слайс служб в слайс DTO
func ModelsToResponseServiceResponses(models []*models.ResponseService) []*ResponseServiceResponse {
	responses := make([]*ResponseServiceResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToResponseServiceResponse(model)
	}
	return responses
}
