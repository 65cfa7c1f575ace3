package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

func validateCompanyInput(in models.BusCompanyInput) (string, bool) {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return "name is required", false
	case strings.TrimSpace(in.ContactEmail) == "":
		return "contact_email is required", false
	case strings.TrimSpace(in.ContactPhone) == "":
		return "contact_phone is required", false
	}
	return "", true
}

// GET /api/admin/companies
func (h *Handler) AdminListCompanies(c *gin.Context) {
	companies, err := h.Companies.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

// POST /api/admin/companies
func (h *Handler) AdminCreateCompany(c *gin.Context) {
	var in models.BusCompanyInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg, ok := validateCompanyInput(in); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	company, err := h.Companies.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_companies", Type: realtime.EventInsert, RowID: company.ID})
	c.JSON(http.StatusCreated, company)
}

// PUT /api/admin/companies/:id
func (h *Handler) AdminUpdateCompany(c *gin.Context) {
	var in models.BusCompanyInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg, ok := validateCompanyInput(in); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	id := c.Param("id")
	if err := h.Companies.Update(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_companies", Type: realtime.EventUpdate, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "company updated"})
}

// DELETE /api/admin/companies/:id
func (h *Handler) AdminDeleteCompany(c *gin.Context) {
	id := c.Param("id")
	if err := h.Companies.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_companies", Type: realtime.EventDelete, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}
