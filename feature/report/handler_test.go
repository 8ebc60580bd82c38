package report_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OndraMix/Wiki/core/reconcile"
	"github.com/OndraMix/Wiki/core/wiki/mocks"
	"github.com/OndraMix/Wiki/feature/report"
)

func newTestApp(client *mocks.Client) *fiber.App {
	svc := report.NewService(client, zap.NewNop())
	handler := report.NewHandler(svc)

	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func TestHandleListFields(t *testing.T) {
	app := newTestApp(new(mocks.Client))

	resp, err := app.Test(httptest.NewRequest("GET", "/api/fields", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var fields []report.FieldInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fields))
	require.Len(t, fields, 8)

	labels := make(map[string]report.FieldInfo)
	for _, f := range fields {
		labels[f.Label] = f
	}
	assert.Contains(t, labels, "CAS")
	assert.True(t, labels["Hustota"].Default.SmartUnits)
	assert.Equal(t, "číslo CAS", labels["CAS"].SourceKey)
}

func TestHandleCheck(t *testing.T) {
	client := new(mocks.Client)
	client.On("Exists", mock.Anything, "cs", "Voda").Return(true, nil)
	client.On("RedirectTarget", mock.Anything, "cs", "Voda").Return("", nil)
	client.On("Fetch", mock.Anything, "cs", "Voda").
		Return("{{Infobox - chemická sloučenina\n| číslo CAS = 7732-18-5\n}}", nil)
	client.On("Sitelinks", mock.Anything, "cs", "Voda").
		Return(map[string]string{"en": "Water"}, nil)
	client.On("Fetch", mock.Anything, "en", "Water").
		Return("{{Chembox\n{{Chembox Identifiers\n| CASNo = 7732-18-5\n}}\n}}", nil)

	app := newTestApp(client)
	req := httptest.NewRequest("POST", "/api/check",
		strings.NewReader(`{"titles": ["Voda"]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out report.CheckReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, reconcile.ClassOK, out.Results[0].Class)
	assert.Equal(t, reconcile.Summary{OK: 1}, out.Summary)

	client.AssertExpectations(t)
}

func TestHandleCheck_FieldOverride(t *testing.T) {
	client := new(mocks.Client)
	client.On("Exists", mock.Anything, "cs", "Voda").Return(true, nil)
	client.On("RedirectTarget", mock.Anything, "cs", "Voda").Return("", nil)
	client.On("Fetch", mock.Anything, "cs", "Voda").
		Return("{{Infobox - chemická sloučenina\n| číslo CAS = 7732-18-5\n| hustota = 1,2\n}}", nil)
	client.On("Sitelinks", mock.Anything, "cs", "Voda").
		Return(map[string]string{"en": "Water"}, nil)
	client.On("Fetch", mock.Anything, "en", "Water").
		Return("{{Chembox\n| CASNo = 7732-18-5\n| Density = 0.9982\n}}", nil)

	app := newTestApp(client)

	// With density disabled the mismatching value is ignored.
	req := httptest.NewRequest("POST", "/api/check",
		strings.NewReader(`{"titles": ["Voda"], "fields": {"Hustota": {"enabled": false}}}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out report.CheckReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Results, 1)
	assert.Equal(t, reconcile.ClassOK, out.Results[0].Class)
}

func TestHandleCheck_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty titles", body: `{"titles": []}`},
		{name: "unknown field", body: `{"titles": ["Voda"], "fields": {"Nope": {}}}`},
		{name: "bad mode", body: `{"titles": ["Voda"], "fields": {"CAS": {"mode": "fuzzy"}}}`},
		{name: "malformed json", body: `{"titles": `},
	}

	app := newTestApp(new(mocks.Client))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/check", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), "error")
		})
	}
}
