// internal/app/features/users/types.go
package users

import (
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/validate"
)

type createUserReq struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

func (req *createUserReq) validate() error {
	req.FullName = normalize.Name(req.FullName)
	if req.FullName == "" {
		return apierr.Invalid("full_name is required")
	}
	if len(req.FullName) > 200 {
		return apierr.Invalid("full_name must be at most 200 characters")
	}
	req.Phone = normalize.Phone(req.Phone)
	if !normalize.ValidPhone(req.Phone) {
		return apierr.Invalid("phone must be a valid phone number")
	}
	if req.Email != "" && !validate.SimpleEmailValid(req.Email) {
		return apierr.Invalid("email must be a valid email address")
	}
	return nil
}

type updateUserReq struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (req *updateUserReq) validate() error {
	if req.FullName != nil {
		name := normalize.Name(*req.FullName)
		if name == "" {
			return apierr.Invalid("full_name must not be empty")
		}
		if len(name) > 200 {
			return apierr.Invalid("full_name must be at most 200 characters")
		}
		*req.FullName = name
	}
	if req.Email != nil && *req.Email != "" && !validate.SimpleEmailValid(*req.Email) {
		return apierr.Invalid("email must be a valid email address")
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return apierr.Invalid("status must be one of active, archived, disabled")
	}
	return nil
}
