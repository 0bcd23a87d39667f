package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// OrdersAPI wraps order placement and history.
type OrdersAPI struct {
	c *Client
}

// CartLine is one snapshotted cart line sent as cart_data.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderPayload is the place-order request. Address fields are used for
// authenticated orders; the guest fields for guest checkout.
type OrderPayload struct {
	AddressID int `json:"address_id,omitempty"`

	Name          string `json:"name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	DivisionID    int    `json:"division_id,omitempty"`
	DistrictID    int    `json:"district_id,omitempty"`
	UpazilaID     int    `json:"upazila_id,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`

	TotalAmount    decimal.Decimal `json:"total_amount"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	PayableAmount  decimal.Decimal `json:"payable_amount"`
	PaymentMethod  string          `json:"payment_method"`
	OrderNote      string          `json:"order_note,omitempty"`
	CartData       []CartLine      `json:"cart_data"`
}

// PlacedOrder is the data payload returned for a successful order.
type PlacedOrder struct {
	ID int `json:"id"`
}

// Place submits an order. token may be empty for guest orders; the
// envelope then carries token+user for auto-login.
func (a *OrdersAPI) Place(ctx context.Context, token string, payload OrderPayload) (PlacedOrder, Envelope, error) {
	env, err := a.c.request(ctx, http.MethodPost, epPlaceOrder, token, payload)
	if err != nil {
		return PlacedOrder{}, env, err
	}
	var placed PlacedOrder
	if err := env.decode(&placed); err != nil {
		return PlacedOrder{}, env, err
	}
	return placed, env, nil
}

// myOrdersData wraps the paginated order history.
type myOrdersData struct {
	MyOrders OrderPage `json:"myOrders"`
}

func (a *OrdersAPI) MyOrders(ctx context.Context, token string, page int) (OrderPage, error) {
	endpoint := epMyOrders
	if page > 1 {
		endpoint = fmt.Sprintf("%s?page=%d", endpoint, page)
	}
	env, err := a.c.request(ctx, http.MethodPost, endpoint, token, nil)
	if err != nil {
		return OrderPage{}, err
	}
	var data myOrdersData
	if err := env.decode(&data); err != nil {
		return OrderPage{}, err
	}
	return data.MyOrders, nil
}

// orderDetailsData wraps a single order.
type orderDetailsData struct {
	Order Order `json:"order"`
}

func (a *OrdersAPI) Details(ctx context.Context, token string, orderID int) (Order, error) {
	env, err := a.c.request(ctx, http.MethodPost, fmt.Sprintf("/order-details/%d", orderID), token, nil)
	if err != nil {
		return Order{}, err
	}
	var data orderDetailsData
	if err := env.decode(&data); err != nil {
		return Order{}, err
	}
	return data.Order, nil
}
