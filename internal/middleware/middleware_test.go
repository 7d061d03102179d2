package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
	"github.com/reselltrack/reselltrack_pro_be/internal/session"
	"github.com/reselltrack/reselltrack_pro_be/internal/utils"
)

const testSecret = "test-secret"

func newApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{JWTFromCookie(testSecret), AttachSession()}
	chain = append(chain, extra...)
	for _, h := range chain {
		app.Use(h)
	}
	app.All("/probe", func(c *fiber.Ctx) error {
		s, _ := SessionFrom(c)
		return c.JSON(fiber.Map{"kind": string(s.Kind), "uid": s.UserID.String()})
	})
	return app
}

func request(t *testing.T, app *fiber.App, method, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, "/probe", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func TestJWTFromCookieMissingCookie(t *testing.T) {
	resp := request(t, newApp(), http.MethodGet, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJWTFromCookieBadToken(t *testing.T) {
	resp := request(t, newApp(), http.MethodGet, "not-a-jwt")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestJWTFromCookieWrongSecret(t *testing.T) {
	token, err := utils.SignJWT("other-secret", uuid.NewString(), "pro", string(session.KindReal), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(), http.MethodGet, token)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAttachSessionRealUser(t *testing.T) {
	uid := uuid.New()
	token, err := utils.SignJWT(testSecret, uid.String(), string(models.TierPro), string(session.KindReal), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(), http.MethodGet, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), uid.String()) {
		t.Fatalf("body %s does not carry user id", body)
	}
}

func TestAttachSessionDemoResolvesFixedIdentity(t *testing.T) {
	// whatever uid a demo token claims, the session pins the synthetic one
	token, err := utils.SignJWT(testSecret, uuid.NewString(), string(models.TierPro), string(session.KindDemo), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(), http.MethodGet, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), session.DemoUserID.String()) {
		t.Fatalf("body %s does not carry the demo owner id", body)
	}
}

func TestBlockDemoWritesSoftBlocks(t *testing.T) {
	token, err := utils.SignJWT(testSecret, "", "", string(session.KindDemo), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(BlockDemoWrites()), http.MethodPost, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 soft block", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"demo":true`) {
		t.Fatalf("body %s is not the demo notice", body)
	}
}

func TestBlockDemoWritesPassesRealSessions(t *testing.T) {
	uid := uuid.New()
	token, err := utils.SignJWT(testSecret, uid.String(), string(models.TierFree), string(session.KindReal), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(BlockDemoWrites()), http.MethodPost, token)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), uid.String()) {
		t.Fatalf("real session did not reach the handler: %d %s", resp.StatusCode, body)
	}
}

func TestRequireRealRejectsDemo(t *testing.T) {
	token, err := utils.SignJWT(testSecret, "", "", string(session.KindDemo), 0, 60)
	if err != nil {
		t.Fatal(err)
	}
	resp := request(t, newApp(RequireReal()), http.MethodPost, token)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}
