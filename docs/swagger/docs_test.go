package swagger

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	fiberswagger "github.com/gofiber/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", fiberswagger.HandlerDefault)

	resp, err := app.Test(httptest.NewRequest("GET", "/swagger/doc.json", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths               map[string]any `json:"paths"`
		SecurityDefinitions map[string]any `json:"securityDefinitions"`
	}
	require.NoError(t, json.Unmarshal(body, &doc))

	assert.Equal(t, "Flight Logger API", doc.Info.Title)
	for _, path := range []string{"/health", "/stats", "/schema", "/aircraft/{icao}", "/flights/{callsign}", "/flights/{callsign}/positions"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.Contains(t, doc.SecurityDefinitions, "ApiKeyAuth")
}
