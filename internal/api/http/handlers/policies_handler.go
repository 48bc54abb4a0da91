package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agentdesk/internal/api/dto"
	"github.com/spec-kit/agentdesk/internal/service"
	apperrors "github.com/spec-kit/agentdesk/pkg/util/errorutil"
)

// PoliciesHandler serves /api/policies.
type PoliciesHandler struct {
	policies *service.PolicyService
}

// NewPoliciesHandler constructs handler.
func NewPoliciesHandler(policies *service.PolicyService) *PoliciesHandler {
	return &PoliciesHandler{policies: policies}
}

// Create POST /api/policies.
func (h *PoliciesHandler) Create(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.CreatePolicyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	draft, err := req.ToDraft()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.policies.Create(c.UserContext(), agentID, draft)
	if err != nil {
		return err
	}
	return createdResult(c, res, "policyId")
}

// Get GET /api/policies/:policyId.
func (h *PoliciesHandler) Get(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "policyId")
	if err != nil {
		return err
	}
	policy, err := h.policies.Get(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return ok(c, policy)
}

// List GET /api/policies.
func (h *PoliciesHandler) List(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	var q dto.PolicyListQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	items, page, err := h.policies.List(c.UserContext(), agentID, q.ToFilter())
	if err != nil {
		return err
	}
	return ok(c, dto.PolicyListResponse{Policies: items, Pagination: page})
}

// Update PUT /api/policies/:policyId.
func (h *PoliciesHandler) Update(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "policyId")
	if err != nil {
		return err
	}
	var req dto.UpdatePolicyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	res, err := h.policies.Update(c.UserContext(), agentID, id, patch)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "policy")
}

// Delete DELETE /api/policies/:policyId.
func (h *PoliciesHandler) Delete(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "policyId")
	if err != nil {
		return err
	}
	res, err := h.policies.Delete(c.UserContext(), agentID, id)
	if err != nil {
		return err
	}
	return mutationResult(c, res, "policy")
}

// Expiring GET /api/policies/expiring?days=.
func (h *PoliciesHandler) Expiring(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	days, err := queryInt(c, "days", 0)
	if err != nil {
		return err
	}
	items, err := h.policies.Expiring(c.UserContext(), agentID, days)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// Statistics GET /api/policies/statistics.
func (h *PoliciesHandler) Statistics(c *fiber.Ctx) error {
	agentID, err := currentAgent(c)
	if err != nil {
		return err
	}
	stats, err := h.policies.Statistics(c.UserContext(), agentID)
	if err != nil {
		return err
	}
	return ok(c, stats)
}
