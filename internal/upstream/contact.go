package upstream

import (
	"context"
	"net/http"
)

// ContactAPI wraps the contact-us submission endpoint.
type ContactAPI struct {
	c *Client
}

type ContactForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

func (a *ContactAPI) Send(ctx context.Context, form ContactForm) (Envelope, error) {
	return a.c.request(ctx, http.MethodPost, epContactUs, "", form)
}
