package upstream

import (
	"context"
	"net/http"
)

// AuthAPI wraps the phone+OTP authentication endpoints. The remote
// service owns the OTP lifecycle; these are pass-through calls.
type AuthAPI struct {
	c *Client
}

// AuthenticateCustomer requests an OTP for the given phone number.
func (a *AuthAPI) AuthenticateCustomer(ctx context.Context, phone string) (Envelope, error) {
	return a.c.request(ctx, http.MethodPost, epAuthenticateCustomer, "", map[string]string{"phone": phone})
}

// VerifyOTP exchanges phone+otp for a bearer token and profile.
func (a *AuthAPI) VerifyOTP(ctx context.Context, phone, otp string) (Envelope, error) {
	return a.c.request(ctx, http.MethodPost, epVerifyOTP, "", map[string]string{"phone": phone, "otp": otp})
}

// InitProfileRequest completes a fresh account after OTP verification.
type InitProfileRequest struct {
	Name          string `json:"name"`
	StreetAddress string `json:"street_address"`
	DivisionID    int    `json:"division_id"`
	DistrictID    int    `json:"district_id"`
	UpazilaID     int    `json:"upazila_id"`
}

func (a *AuthAPI) InitProfile(ctx context.Context, token string, req InitProfileRequest) (Envelope, error) {
	return a.c.request(ctx, http.MethodPost, epInitProfile, token, req)
}

func (a *AuthAPI) DeleteAccount(ctx context.Context, token string) (Envelope, error) {
	return a.c.request(ctx, http.MethodDelete, epDeleteAccount, token, nil)
}
