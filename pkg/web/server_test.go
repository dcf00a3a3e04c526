package web

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teslashibe/go-xr/pkg/protocol"
	"github.com/teslashibe/go-xr/pkg/teleport"
)

type stubSource struct {
	status  protocol.FrameData
	commits []teleport.Commit
}

func (s *stubSource) Status() protocol.FrameData  { return s.status }
func (s *stubSource) Commits() []teleport.Commit { return s.commits }

func get(t *testing.T, s *Server, path string) (int, []byte) {
	t.Helper()
	resp, err := s.App().Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestServer_Status(t *testing.T) {
	src := &stubSource{status: protocol.FrameData{
		Frame:   9,
		Session: protocol.SessionData{Active: true, ReferenceSpace: "local-floor"},
	}}
	s := NewServer("0", src)

	code, body := get(t, s, "/api/status")
	require.Equal(t, 200, code)

	var got protocol.FrameData
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, uint64(9), got.Frame)
	assert.Equal(t, "local-floor", got.Session.ReferenceSpace)
}

func TestServer_TeleportsNewestFirst(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	src := &stubSource{commits: []teleport.Commit{
		{ID: first, DeviceID: 1, Destination: mgl64.Vec3{1, 0, 0}},
		{ID: second, DeviceID: 1, Destination: mgl64.Vec3{2, 0, 0}},
	}}
	s := NewServer("0", src)

	code, body := get(t, s, "/api/teleports")
	require.Equal(t, 200, code)

	var got []TeleportEntry
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, second.String(), got[0].ID)
	assert.Equal(t, protocol.Vec3{2, 0, 0}, got[0].Destination)
}

func TestServer_Health(t *testing.T) {
	s := NewServer("0", &stubSource{})
	code, body := get(t, s, "/api/health")
	require.Equal(t, 200, code)
	assert.Contains(t, string(body), `"ok":true`)
}

func TestServer_WebsocketRequiresUpgrade(t *testing.T) {
	s := NewServer("0", &stubSource{})
	code, _ := get(t, s, "/ws/frames")
	assert.Equal(t, 426, code)
}

func TestServer_ServesDashboard(t *testing.T) {
	s := NewServer("0", &stubSource{})
	code, body := get(t, s, "/")
	require.Equal(t, 200, code)
	assert.Contains(t, string(body), "/ws/frames")
}
