package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainActivity "github.com/9rajputshivam/daytime-window-check/domains/activity"
	"github.com/9rajputshivam/daytime-window-check/pkg/window"
)

type stubActivityService struct {
	verdict     window.Verdict
	executed    int
	lastRequest domainActivity.ExecuteRequest
	lifecycle   []string
}

func (s *stubActivityService) Execute(_ context.Context, request domainActivity.ExecuteRequest) window.Verdict {
	s.executed++
	s.lastRequest = request
	return s.verdict
}

func (s *stubActivityService) Save(context.Context, domainActivity.LifecycleRequest) error {
	s.lifecycle = append(s.lifecycle, "save")
	return nil
}

func (s *stubActivityService) Validate(context.Context, domainActivity.LifecycleRequest) error {
	s.lifecycle = append(s.lifecycle, "validate")
	return nil
}

func (s *stubActivityService) Publish(context.Context, domainActivity.LifecycleRequest) error {
	s.lifecycle = append(s.lifecycle, "publish")
	return nil
}

func (s *stubActivityService) Stop(context.Context, domainActivity.LifecycleRequest) error {
	s.lifecycle = append(s.lifecycle, "stop")
	return nil
}

func passthroughAuth(c *fiber.Ctx) error {
	return c.Next()
}

func decodeExecuteBody(t *testing.T, resp io.Reader) []map[string]string {
	t.Helper()
	var payload []map[string]string
	require.NoError(t, json.NewDecoder(resp).Decode(&payload))
	require.Len(t, payload, 1)
	return payload
}

func TestExecuteReturnsStringVerdictPayload(t *testing.T) {
	hour := 14
	service := &stubActivityService{verdict: window.Verdict{IsWithinWindow: true, CurrentHour: &hour}}
	app := fiber.New()
	InitRestActivity(app, service, passthroughAuth)

	body := `{"activityObjectID":"act1","inArguments":[{"country":"Germany"}]}`
	req := httptest.NewRequest(fiber.MethodPost, "/activity/execute", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := decodeExecuteBody(t, resp.Body)
	assert.Equal(t, "true", payload[0]["isWithinWindow"])
	assert.Equal(t, "14", payload[0]["currentHour"])
	assert.Equal(t, "Germany", service.lastRequest.Country())
}

func TestExecuteMalformedBodyFailsClosedWith200(t *testing.T) {
	service := &stubActivityService{}
	app := fiber.New()
	InitRestActivity(app, service, passthroughAuth)

	req := httptest.NewRequest(fiber.MethodPost, "/activity/execute", strings.NewReader("{not json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, service.executed)

	payload := decodeExecuteBody(t, resp.Body)
	assert.Equal(t, "false", payload[0]["isWithinWindow"])
	assert.Equal(t, "", payload[0]["currentHour"])
}

func TestExecuteAbsentHourSerializesEmpty(t *testing.T) {
	service := &stubActivityService{verdict: window.Verdict{}}
	app := fiber.New()
	InitRestActivity(app, service, passthroughAuth)

	req := httptest.NewRequest(fiber.MethodPost, "/activity/execute", strings.NewReader(`{"inArguments":[]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)

	payload := decodeExecuteBody(t, resp.Body)
	assert.Equal(t, "false", payload[0]["isWithinWindow"])
	assert.Equal(t, "", payload[0]["currentHour"])
}

func TestLifecycleEndpointsAcknowledge(t *testing.T) {
	service := &stubActivityService{}
	app := fiber.New()
	InitRestActivity(app, service, passthroughAuth)

	for _, path := range []string{"save", "validate", "publish", "stop"} {
		req := httptest.NewRequest(fiber.MethodPost, "/activity/"+path, strings.NewReader(`{}`))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
	assert.Equal(t, []string{"save", "validate", "publish", "stop"}, service.lifecycle)
}

func TestExecuteRouteIsBehindAuth(t *testing.T) {
	service := &stubActivityService{}
	app := fiber.New()
	deny := func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	InitRestActivity(app, service, deny)

	req := httptest.NewRequest(fiber.MethodPost, "/activity/execute", strings.NewReader(`{}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, service.executed)
}
