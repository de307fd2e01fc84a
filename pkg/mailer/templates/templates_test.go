package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAllTemplates(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, name := range []string{Welcome, ProfileUpdated, AccountRemoved, OrderConfirmation} {
		t.Run(name, func(t *testing.T) {
			data := ToMap(NewEmailData("Shop", name, "Jane", "jane@example.com",
				WithUser(7, "jane"), WithTime(at), WithOrder("pen", 10, 2)))
			subject, text, html, err := Render(name, data)
			require.NoError(t, err)
			assert.NotEmpty(t, subject)
			assert.Contains(t, text, "Jane")
			assert.Contains(t, html, "Jane")
		})
	}
}

func TestOrderConfirmationAmounts(t *testing.T) {
	data := NewEmailData("Shop", OrderConfirmation, "", "jane@example.com", WithUser(7, "jane"), WithOrder("pen", 10, 2))
	subject, text, _, err := Render(OrderConfirmation, data)
	require.NoError(t, err)
	assert.Equal(t, "Order confirmation: pen x2", subject)
	assert.Contains(t, text, "2 x 10.00 = 20.00")
	assert.Contains(t, text, "Hi jane,")
}

func TestHTMLIsEscaped(t *testing.T) {
	data := NewEmailData("Shop", Welcome, "<script>", "x@example.com", WithUser(1, "x"))
	_, _, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
