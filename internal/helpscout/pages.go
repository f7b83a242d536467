package helpscout

import (
	"context"
	"encoding/json"
	"fmt"
)

// Page is the paging metadata of a list envelope.
type Page struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// envelope is the API's list-response wrapper.
type envelope struct {
	Embedded map[string]json.RawMessage `json:"_embedded"`
	Page     Page                       `json:"page"`
}

// decodeList unwraps the items under _embedded.<resource> plus the page
// metadata. A missing resource key yields an empty slice.
func decodeList[T any](data []byte, resource string) ([]T, Page, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, Page{}, fmt.Errorf("parse %s envelope: %w", resource, err)
	}

	var items []T
	if raw, ok := env.Embedded[resource]; ok {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, Page{}, fmt.Errorf("parse %s list: %w", resource, err)
		}
	}
	return items, env.Page, nil
}

// ListFunc fetches one page of a paged listing.
type ListFunc[T any] func(ctx context.Context, page int) ([]T, Page, error)

// FetchAll assembles the complete result set of a paged listing, requesting
// pages strictly sequentially starting at 1. Each page is fetched exactly
// once; a reported totalPages of 0 means a single implicit page.
func FetchAll[T any](ctx context.Context, list ListFunc[T]) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		items, p, err := list(ctx, page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if p.TotalPages == 0 || page >= p.TotalPages {
			return all, nil
		}
	}
}
