// internal/app/features/verify/verify.go
package verify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/sitedesk/internal/app/store/phoneverify"
	"github.com/dalemusser/sitedesk/internal/app/system/apierr"
	"github.com/dalemusser/sitedesk/internal/app/system/normalize"
	"github.com/dalemusser/sitedesk/internal/app/system/respond"
	"github.com/dalemusser/sitedesk/internal/app/system/sms"
	"github.com/dalemusser/sitedesk/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type sendReq struct {
	Phone string `json:"phone"`
}

type checkReq struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// handleSend generates a one-time code for the phone and delivers it via
// the SMS sender. The code itself never appears in the response.
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) error {
	var req sendReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	phone := normalize.Phone(req.Phone)
	if !normalize.ValidPhone(phone) {
		return apierr.Invalid("phone must be a valid phone number")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.Codes.Create(ctx, phone)
	if err != nil {
		if errors.Is(err, phoneverify.ErrTooManyResends) {
			return apierr.Conflict("too many verification codes requested, try again later")
		}
		return err
	}

	message := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(h.Codes.Expiry().Minutes()))
	if err := h.Sender.Send(ctx, phone, message); err != nil {
		if errors.Is(err, sms.ErrNotConfigured) {
			h.Log.Error("sms sender not configured")
			return apierr.New(apierr.KindUnavailable, "sms delivery is not available")
		}
		h.Log.Error("sms send failed", zap.Error(err))
		return apierr.New(apierr.KindUnavailable, "failed to deliver verification code")
	}

	respond.OK(w, map[string]any{
		"phone":      phone,
		"expires_in": int(h.Codes.Expiry().Seconds()),
	})
	return nil
}

// handleCheck validates a code for the phone. Valid codes are single use.
func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) error {
	var req checkReq
	if err := respond.DecodeJSON(r, &req); err != nil {
		return err
	}
	phone := normalize.Phone(req.Phone)
	if !normalize.ValidPhone(phone) {
		return apierr.Invalid("phone must be a valid phone number")
	}
	if len(req.Code) != phoneverify.CodeLength {
		return apierr.Invalid("code must be 6 digits")
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch err := h.Codes.VerifyCode(ctx, phone, req.Code); {
	case err == nil:
		respond.OK(w, map[string]any{"phone": phone, "verified": true})
		return nil
	case errors.Is(err, phoneverify.ErrNotFound):
		return apierr.NotFound("verification")
	case errors.Is(err, phoneverify.ErrInvalidCode):
		return apierr.Invalid("verification code is incorrect")
	case errors.Is(err, phoneverify.ErrTooManyAttempts):
		return apierr.Conflict("too many verification attempts, request a new code")
	default:
		return err
	}
}
