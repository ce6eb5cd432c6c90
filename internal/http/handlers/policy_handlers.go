package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// PolicyHandlers manages casbin route policies at runtime
type PolicyHandlers struct {
	policies domain.PolicyService
	logger   *zap.Logger
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policies domain.PolicyService, logger *zap.Logger) *PolicyHandlers {
	return &PolicyHandlers{policies: policies, logger: logger}
}

type policyReq struct {
	Sub string `json:"sub" binding:"required"`
	Obj string `json:"obj" binding:"required"`
	Act string `json:"act" binding:"required"`
}

func (h *PolicyHandlers) List(c *gin.Context) {
	respondData(c, domain.SuccessData(h.policies.GetPolicies()))
}

func (h *PolicyHandlers) Add(c *gin.Context) {
	var r policyReq
	if !bind(c, &r) {
		return
	}
	h.apply(c, h.policies.AddPolicy(r.Sub, r.Obj, r.Act), domain.MsgPolicyAdded)
}

func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r policyReq
	if !bind(c, &r) {
		return
	}
	h.apply(c, h.policies.RemovePolicy(r.Sub, r.Obj, r.Act), domain.MsgPolicyRemoved)
}

func (h *PolicyHandlers) apply(c *gin.Context, err error, okMsg string) {
	switch {
	case err == nil:
		respond(c, domain.Success(okMsg))
	case errors.Is(err, domain.ErrPolicyExists):
		respond(c, domain.Failure(domain.MsgPolicyExists))
	case errors.Is(err, domain.ErrPolicyNotFound):
		respond(c, domain.Failure(domain.MsgPolicyNotExists))
	default:
		h.logger.Error("policy change failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, domain.Failure(domain.MsgGeneric))
	}
}
