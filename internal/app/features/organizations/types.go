// internal/app/features/organizations/types.go
package organizations

import (
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/htmlsanitize"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/domain/models"
)

type createOrgReq struct {
	Name        string `json:"name"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
}

func (req *createOrgReq) validate() error {
	req.Name = normalize.Name(req.Name)
	if req.Name == "" {
		return apierr.Invalid("name is required")
	}
	if len(req.Name) > 200 {
		return apierr.Invalid("name must be at most 200 characters")
	}
	req.ContactInfo = htmlsanitize.Sanitize(req.ContactInfo)
	return nil
}

type updateOrgReq struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (req *updateOrgReq) validate() error {
	if req.Name != nil {
		name := normalize.Name(*req.Name)
		if name == "" {
			return apierr.Invalid("name must not be empty")
		}
		if len(name) > 200 {
			return apierr.Invalid("name must be at most 200 characters")
		}
		*req.Name = name
	}
	if req.ContactInfo != nil {
		*req.ContactInfo = htmlsanitize.Sanitize(*req.ContactInfo)
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return apierr.Invalid("status must be one of active, archived, disabled")
	}
	return nil
}

type addMemberReq struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

type updateMemberReq struct {
	RoleID string `json:"role_id"`
}

// orgDetail is the organization detail payload with derived counts.
type orgDetail struct {
	models.Organization
	MemberCount  int64 `json:"member_count"`
	ProjectCount int64 `json:"project_count"`
}
