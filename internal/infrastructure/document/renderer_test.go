package document

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/domain/company"
	"hingmart/internal/domain/invoice"
	"hingmart/internal/domain/orders"
)

func TestHTMLRenderer(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	o := &orders.Order{
		ID:           "ord-1",
		CustomerName: "Asha <Traders>",
		Items: []orders.OrderItem{
			{Name: "Hing 10g", HSN: "0910", Quantity: 2, Rate: 105, TaxPercent: 5},
		},
	}
	c := company.Default()
	c.GstNo = "27AAAAA0000A1Z5"
	summary := invoice.BuildSummary(o, c, "INV-2026-00001", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	body, contentType, err := renderer.Render(context.Background(), summary)
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", contentType)

	html := string(body)
	assert.Contains(t, html, "INV-2026-00001")
	assert.Contains(t, html, "Rs Hing")
	assert.Contains(t, html, "27AAAAA0000A1Z5")
	assert.Contains(t, html, "220.50")
	assert.Contains(t, html, "Rupees Only")
	// Customer-entered text is escaped, never raw markup.
	assert.NotContains(t, html, "<Traders>")
	assert.Contains(t, html, "&lt;Traders&gt;")
}
