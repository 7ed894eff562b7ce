package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/immerse/sponsor-tracker/internal/config"
)

// TestEnvironment содержит запущенное приложение для тестов
type TestEnvironment struct {
	App     *App
	BaseURL string
}

// testConfig возвращает конфигурацию с указанным хранилищем и свободным портом
func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        freePort(t),
			CORSOrigins: []string{"*"},
		},
		Store: config.StoreConfig{Driver: driver},
		Mongo: config.MongoConfig{
			Database:       "sponsors_test",
			Collection:     "sponsors",
			ConnectTimeout: 30 * time.Second,
		},
		Dashboard: config.DashboardConfig{
			Title:          "IMMERSE 2026",
			Locale:         "en-US",
			CurrencySymbol: "₹",
		},
	}
}

// freePort находит свободный TCP порт на loopback интерфейсе
func freePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
}

// StartTestEnvironment создает, инициализирует и запускает приложение
func StartTestEnvironment(t *testing.T, cfg *config.Config) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	application, err := New(cfg)
	require.NoError(t, err, "Failed to create application")

	require.NoError(t, application.Initialize(ctx), "Failed to initialize application")

	go func() {
		if err := application.Run(); err != nil && err != http.ErrServerClosed {
			t.Logf("Server error: %v", err)
		}
	}()

	env := &TestEnvironment{
		App:     application,
		BaseURL: fmt.Sprintf("http://%s", net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
	}
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = application.Shutdown(shutdownCtx)
	})

	env.WaitForServer(t)
	return env
}

// WaitForServer ждет пока сервер начнет принимать соединения
func (te *TestEnvironment) WaitForServer(t *testing.T) {
	t.Helper()

	for i := 0; i < 50; i++ {
		resp, err := http.Get(te.BaseURL + "/teams")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Fatal("Application did not start in time")
}

// MakeRequest вспомогательная функция для HTTP запросов в тестах
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body io.Reader) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, te.BaseURL+path, body)
	require.NoError(t, err, "Failed to create request")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: 10 * time.Second,
		// Редиректы дашборда проверяем вручную
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to make request")
	return resp
}

// apiResponse конверт ответа API
type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    json.RawMessage `json:"data"`
}

type sponsorResponse struct {
	ID           string  `json:"_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	BusinessType string  `json:"businessType"`
	Location     string  `json:"location"`
	AssignedTeam string  `json:"assignedTeam"`
	Package      string  `json:"package"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

func decodeResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (te *TestEnvironment) listSponsors(t *testing.T) []sponsorResponse {
	t.Helper()

	resp := te.MakeRequest(t, http.MethodGet, "/sponsors", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeResponse(t, resp)
	require.True(t, out.Success)

	var sponsors []sponsorResponse
	require.NoError(t, json.Unmarshal(out.Data, &sponsors))
	require.Equal(t, out.Count, len(sponsors))
	return sponsors
}
