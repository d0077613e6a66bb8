package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/payrollpro/payroll-backend-go/internal/domain/timesheet"
	"github.com/payrollpro/payroll-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	// Entries
	CreateEntry(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)

	// Lifecycle
	SubmitEntry(w http.ResponseWriter, r *http.Request)
	ApproveEntry(w http.ResponseWriter, r *http.Request)
	RejectEntry(w http.ResponseWriter, r *http.Request)

	// Weekly
	GetWeek(w http.ResponseWriter, r *http.Request)
	SaveWeek(w http.ResponseWriter, r *http.Request)
	SubmitWeek(w http.ResponseWriter, r *http.Request)

	PreviewSplit(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

// ========== ENTRIES ==========

func (h *timesheetHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet entry created", result)
}

func (h *timesheetHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	result, err := h.timesheetService.GetEntry(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := timesheet.ListEntriesRequest{}

	if employeeID := query.Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}
	if startDate := query.Get("start_date"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		req.EndDate = &endDate
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.Page, req.Limit = pagination(r)

	result, err := h.timesheetService.ListEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Paginated(w, result.Entries, result.Page, result.Limit, result.TotalCount, result.TotalPages)
}

func (h *timesheetHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	var req timesheet.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.timesheetService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	if err := h.timesheetService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet entry deleted", nil)
}

// ========== LIFECYCLE ==========

func (h *timesheetHandlerImpl) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.timesheetService.SubmitEntry, "Timesheet entry submitted")
}

func (h *timesheetHandlerImpl) ApproveEntry(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.timesheetService.ApproveEntry, "Timesheet entry approved")
}

func (h *timesheetHandlerImpl) RejectEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	var req timesheet.RejectEntryRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	req.ID = id

	result, err := h.timesheetService.RejectEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet entry rejected", result)
}

func (h *timesheetHandlerImpl) review(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) (timesheet.EntryResponse, error), message string) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Entry ID is required", nil)
		return
	}

	result, err := action(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// ========== WEEKLY ==========

func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	req := timesheet.WeekRequest{WeekStart: r.URL.Query().Get("week_start")}
	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		req.EmployeeID = &employeeID
	}

	result, err := h.timesheetService.GetWeeklyView(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) SaveWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SaveWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.SaveWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week saved", result)
}

func (h *timesheetHandlerImpl) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.WeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.SubmitWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week submitted", result)
}

func (h *timesheetHandlerImpl) PreviewSplit(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.PreviewSplit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func pagination(r *http.Request) (page, limit int) {
	if p := r.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			page = v
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil {
			limit = v
		}
	}
	return page, limit
}
