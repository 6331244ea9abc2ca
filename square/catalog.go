package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/models"
)

var imageContentTypes = map[string]bool{
	"image/jpeg":  true,
	"image/pjpeg": true,
	"image/png":   true,
	"image/x-png": true,
	"image/gif":   true,
}

// ValidateImageContentType rejects uploads Square will not store as catalog
// images.
func ValidateImageContentType(contentType string) error {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !imageContentTypes[ct] {
		return apperrors.Invalid("image", fmt.Sprintf("unsupported content type %q, expected JPEG, PNG or GIF", contentType))
	}

	return nil
}

type catalogObject struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	ItemData *struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Variations  []struct {
			ItemVariationData struct {
				PriceMoney *Money `json:"price_money"`
			} `json:"item_variation_data"`
		} `json:"variations"`
	} `json:"item_data"`
}

type catalogPage struct {
	Objects []catalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

// ListMenu reads every ITEM of the catalog as a menu entry priced from its
// first variation.
func (c *Client) ListMenu(ctx context.Context) ([]models.MenuEntry, error) {
	var menu []models.MenuEntry

	cursor := ""
	for {
		q := url.Values{"types": {"ITEM"}}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var page catalogPage
		if err := c.decode(ctx, http.MethodGet, "catalog/list?"+q.Encode(), nil, &page); err != nil {
			return nil, err
		}

		for _, obj := range page.Objects {
			if obj.ItemData == nil {
				continue
			}
			entry := models.MenuEntry{
				ID:          obj.ID,
				Name:        obj.ItemData.Name,
				Description: obj.ItemData.Description,
			}
			for _, v := range obj.ItemData.Variations {
				if p := v.ItemVariationData.PriceMoney; p != nil {
					entry.Price = float64(p.Amount) / 100
					entry.Currency = p.Currency
					break
				}
			}
			menu = append(menu, entry)
		}

		if page.Cursor == "" {
			return menu, nil
		}
		cursor = page.Cursor
	}
}

// ListCatalog returns the raw catalog listing for the given object types.
func (c *Client) ListCatalog(ctx context.Context, types []string) (json.RawMessage, error) {
	if len(types) == 0 {
		types = []string{"ITEM"}
	}
	q := url.Values{"types": {strings.Join(types, ",")}}

	return c.do(ctx, http.MethodGet, "catalog/list?"+q.Encode(), nil)
}

// UpsertItem creates or replaces a menu item with a single "Regular"
// variation priced at amount minor units.
func (c *Client) UpsertItem(ctx context.Context, name string, amount int64, currency string) (json.RawMessage, error) {
	if currency == "" {
		currency = "USD"
	}
	abbreviation := name
	if r := []rune(name); len(r) > 3 {
		abbreviation = string(r[:3])
	}

	body := map[string]any{
		"idempotency_key": c.newKey(),
		"object": map[string]any{
			"type": "ITEM",
			"id":   "#" + name,
			"item_data": map[string]any{
				"name":         name,
				"abbreviation": abbreviation,
				"variations": []map[string]any{{
					"type": "ITEM_VARIATION",
					"id":   "#" + name + "-regular",
					"item_variation_data": map[string]any{
						"name":         "Regular",
						"pricing_type": "FIXED_PRICING",
						"price_money":  Money{Amount: amount, Currency: currency},
					},
				}},
			},
		},
	}

	return c.do(ctx, http.MethodPost, "catalog/object", body)
}

func (c *Client) DeleteObjects(ctx context.Context, ids []string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "catalog/batch-delete", map[string]any{"object_ids": ids})
}

// CreateImage uploads an image and attaches it to a catalog object.
func (c *Client) CreateImage(ctx context.Context, objectID, caption, filename, contentType string, image io.Reader) (json.RawMessage, error) {
	if err := ValidateImageContentType(contentType); err != nil {
		return nil, err
	}

	request, err := json.Marshal(map[string]any{
		"idempotency_key": c.newKey(),
		"object_id":       objectID,
		"image": map[string]any{
			"type":       "IMAGE",
			"id":         "#TEMP_ID",
			"image_data": map[string]any{"caption": caption},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal image request: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="request"`)
	header.Set("Content-Type", "application/json")
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create request part: %w", err)
	}
	if _, err := part.Write(request); err != nil {
		return nil, fmt.Errorf("failed to write request part: %w", err)
	}

	header = make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image_file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err = mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to write image part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "catalog/images", &buf, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}

	return c.send(req)
}
