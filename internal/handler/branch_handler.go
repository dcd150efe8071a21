package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorlane/tutor-admin-api/internal/service"
	appErrors "github.com/tutorlane/tutor-admin-api/pkg/errors"
	"github.com/tutorlane/tutor-admin-api/pkg/response"
)

// BranchHandler handles branch endpoints.
type BranchHandler struct {
	service *service.BranchService
}

// NewBranchHandler constructs a branch handler.
func NewBranchHandler(svc *service.BranchService) *BranchHandler {
	return &BranchHandler{service: svc}
}

// List godoc
// @Summary List branches
// @Tags Branches
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branches, nil)
}

// Create godoc
// @Summary Create branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param payload body service.CreateBranchRequest true "Branch payload"
// @Success 201 {object} response.Envelope
// @Router /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, branch)
}

// Update godoc
// @Summary Update branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param payload body service.UpdateBranchRequest true "Branch payload"
// @Success 200 {object} response.Envelope
// @Router /branches/{id} [patch]
func (h *BranchHandler) Update(c *gin.Context) {
	var req service.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branch, nil)
}

// SetActive godoc
// @Summary Activate or deactivate branch
// @Tags Branches
// @Accept json
// @Produce json
// @Param id path string true "Branch ID"
// @Param payload body service.ToggleActiveRequest true "Active flag"
// @Success 200 {object} response.Envelope
// @Router /branches/{id}/active [patch]
func (h *BranchHandler) SetActive(c *gin.Context) {
	var req service.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	branch, err := h.service.SetActive(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branch, nil)
}
