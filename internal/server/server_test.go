package server

import (
	"context"
	"crypto/md5"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"row-hasher/internal/encode"
)

func post(t *testing.T, s *Server, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/hash", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())

	return rec, out
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	New(Options{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAlgorithms(t *testing.T) {
	rec := httptest.NewRecorder()
	New(Options{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/algorithms", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"SHA256"`)
	assert.Contains(t, rec.Body.String(), `"BASE64"`)
}

func TestHash(t *testing.T) {
	s := New(Options{})

	rec, out := post(t, s, `{
		"mapping": "full=first[UT],last[L];idh=id",
		"encoding": "hex",
		"rows": [
			{"id": 1, "first": " Ann ", "last": "SMITH"},
			{"id": 2, "first": "Bob"}
		]
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, []any{"full", "idh"}, out["written"])

	rows := out["rows"].([]any)
	require.Len(t, rows, 2)

	first := rows[0].(map[string]any)
	assert.Equal(t, "2d5081b3cf79ec386fa25682e71dc6fe", first["full"])
	assert.Equal(t, "c4ca4238a0b923820dcc509a6f75849b", first["idh"])
	assert.Equal(t, " Ann ", first["first"], "input columns are copied")
	assert.InDelta(t, 1, first["id"], 0)

	second := rows[1].(map[string]any)
	assert.Nil(t, second["last"])
	assert.Len(t, second["full"], 32)
}

func TestHashPlainDefault(t *testing.T) {
	rec, out := post(t, New(Options{}), `{"mapping": "h=a", "algorithm": "md5", "rows": [{"a": "x"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	row := out["rows"].([]any)[0].(map[string]any)
	sum := md5.Sum([]byte("x"))
	assert.Equal(t, encode.Plain.Encode(sum[:]), row["h"], "PLAIN is the default encoding")
}

func TestHashIgnoreMissing(t *testing.T) {
	rec, out := post(t, New(Options{}), `{
		"mapping": "h=a,nope",
		"encoding": "HEX",
		"ignore_missing": true,
		"rows": [{"a": "x"}]
	}`)
	require.Equal(t, http.StatusOK, rec.Code)

	row := out["rows"].([]any)[0].(map[string]any)
	assert.Equal(t, "9dd4e461268c8034f5c8564e155c67a6", row["h"])
	assert.Len(t, out["warnings"], 1)
}

func TestHashBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"syntax", `{"mapping": "h", "rows": []}`, http.StatusBadRequest, "expected name=columns"},
		{"unknown column", `{"mapping": "h=frist", "rows": [{"first": "a"}]}`, http.StatusBadRequest, `did you mean \"first\"`},
		{"unknown algorithm", `{"mapping": "h=a", "algorithm": "crc32"}`, http.StatusBadRequest, "unknown algorithm"},
		{"unknown encoding", `{"mapping": "h=a", "encoding": "base32"}`, http.StatusBadRequest, "unknown encoding"},
		{"malformed", `{"mapping": `, http.StatusBadRequest, "malformed JSON"},
		{"too many rows", `{"mapping": "h=a", "rows": [{}, {}, {}]}`, http.StatusRequestEntityTooLarge, "at most 2 rows"},
	}

	s := New(Options{MaxRows: 2})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := post(t, s, tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestListenAndServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- New(Options{}).ListenAndServe(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
