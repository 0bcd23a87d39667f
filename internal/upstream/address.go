package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// AddressAPI wraps the address CRUD endpoints. All calls require a
// bearer token; addresses are server-owned and only cached per fetch.
type AddressAPI struct {
	c *Client
}

// AddressPayload is the create/update request body. IsDefault must be
// the integer literal 0 or 1; the upstream rejects booleans silently.
type AddressPayload struct {
	StreetAddress string `json:"street_address"`
	DivisionID    int    `json:"division_id"`
	DistrictID    int    `json:"district_id"`
	UpazilaID     int    `json:"upazila_id"`
	IsDefault     int    `json:"is_default"`
}

// addressListData wraps the address list payload.
type addressListData struct {
	AddressList []Address `json:"addressList"`
}

func (a *AddressAPI) List(ctx context.Context, token string) ([]Address, error) {
	env, err := a.c.request(ctx, http.MethodGet, epAddress, token, nil)
	if err != nil {
		return nil, err
	}
	var data addressListData
	if err := env.decode(&data); err != nil {
		return nil, err
	}
	return data.AddressList, nil
}

func (a *AddressAPI) Add(ctx context.Context, token string, payload AddressPayload) (Envelope, error) {
	return a.c.request(ctx, http.MethodPost, epAddress, token, payload)
}

func (a *AddressAPI) Update(ctx context.Context, token string, addressID int, payload AddressPayload) (Envelope, error) {
	return a.c.request(ctx, http.MethodPut, fmt.Sprintf("%s/%d", epAddress, addressID), token, payload)
}

func (a *AddressAPI) Delete(ctx context.Context, token string, addressID int) (Envelope, error) {
	return a.c.request(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", epAddress, addressID), token, nil)
}
