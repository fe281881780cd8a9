package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/fieldforce/sfm_backend/internal/core/domain"
	"github.com/fieldforce/sfm_backend/internal/dto"
)

// registerCustomValidators attaches the domain-aware binding validators to
// gin's validator engine. Called once from RegisterRoutes.
func registerCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("hierarchyrole", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).IsValid()
	})

	_ = v.RegisterValidation("approvalstatus", func(fl validator.FieldLevel) bool {
		return domain.ApprovalStatus(fl.Field().String()).IsValid()
	})

	_ = v.RegisterValidation("recordaction", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case dto.ActionApprove, dto.ActionReject, dto.ActionConvert, dto.ActionSettle:
			return true
		}
		return false
	})
}
