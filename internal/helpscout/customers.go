package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListCustomersOptions filters a customer listing.
type ListCustomersOptions struct {
	Query   string
	Mailbox string
	SortBy  string
	Page    int
}

func (o ListCustomersOptions) values() url.Values {
	params := url.Values{}
	if o.Query != "" {
		params.Set("query", o.Query)
	}
	if o.Mailbox != "" {
		params.Set("mailbox", o.Mailbox)
	}
	if o.SortBy != "" {
		params.Set("sortField", o.SortBy)
	}
	if o.Page > 0 {
		params.Set("page", strconv.Itoa(o.Page))
	}
	return params
}

// ListCustomers returns one page of customers.
func (c *Client) ListCustomers(ctx context.Context, opts ListCustomersOptions) ([]Customer, Page, error) {
	data, err := c.request(ctx, http.MethodGet, "/customers", opts.values(), nil)
	if err != nil {
		return nil, Page{}, err
	}
	return decodeList[Customer](data, "customers")
}

// GetCustomer fetches a single customer.
func (c *Client) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	data, err := c.request(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, nil)
	if err != nil {
		return nil, err
	}

	var cust Customer
	if err := json.Unmarshal(data, &cust); err != nil {
		return nil, fmt.Errorf("parse customer: %w", err)
	}
	return &cust, nil
}

// CreateCustomerRequest is the body of a customer create call.
type CreateCustomerRequest struct {
	FirstName string          `json:"firstName,omitempty"`
	LastName  string          `json:"lastName,omitempty"`
	Emails    []CustomerEmail `json:"emails,omitempty"`
}

// CreateCustomer creates a customer record.
func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) error {
	_, err := c.request(ctx, http.MethodPost, "/customers", nil, req)
	return err
}

// UpdateCustomer overwrites a customer's top-level fields.
func (c *Client) UpdateCustomer(ctx context.Context, id int64, req CreateCustomerRequest) error {
	_, err := c.request(ctx, http.MethodPut, fmt.Sprintf("/customers/%d", id), nil, req)
	return err
}
