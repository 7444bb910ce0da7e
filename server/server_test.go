package server

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrecan/death/v3"

	"github.com/golang-walletauth/auth"
	"github.com/golang-walletauth/base58"
	"github.com/golang-walletauth/store"
	"github.com/golang-walletauth/wallet"
)

type M = map[string]interface{}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	s, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)

	srv := httptest.NewServer(New(auth.New(s, auth.Options{Domain: "aasdf.test"}), zerolog.Nop()))
	t.Cleanup(func() {
		srv.Close()
		assert.NoError(t, s.Close())
	})
	return srv
}

func do(t *testing.T, method, url, token string, body interface{}) (int, M) {
	t.Helper()

	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		bs, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(bs)
	}

	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out M
	if res.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	}
	return res.StatusCode, out
}

func signIn(t *testing.T, srv *httptest.Server, w *wallet.Wallet) string {
	t.Helper()

	status, c := do(t, http.MethodPost, srv.URL+"/auth/challenge", "", ChallengeRequest{Address: w.Address()})
	require.Equal(t, http.StatusOK, status, c)

	status, s := do(t, http.MethodPost, srv.URL+"/auth/verify", "", VerifyRequest{
		ChallengeID: c["id"].(string),
		Signature:   w.Sign([]byte(c["message"].(string))),
	})
	require.Equal(t, http.StatusOK, status, s)
	assert.Equal(t, w.Address(), s["address"])
	return s["token"].(string)
}

func TestServer_SignInFlow(t *testing.T) {
	srv := newTestServer(t)
	w, err := wallet.MakeWallet()
	require.NoError(t, err)

	token := signIn(t, srv, w)

	status, s := do(t, http.MethodGet, srv.URL+"/auth/session", token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, w.Address(), s["address"])
	assert.NotContains(t, s, "token")

	status, _ = do(t, http.MethodDelete, srv.URL+"/auth/session", token, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, s = do(t, http.MethodGet, srv.URL+"/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, auth.ErrSessionNotFound.Error(), s["error"])
}

func TestServer_Challenge(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"solana address", ChallengeRequest{Address: "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z"}, http.StatusOK},
		{"invalid character", ChallengeRequest{Address: "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS960"}, http.StatusBadRequest},
		{"legacy address", ChallengeRequest{Address: "16UwLL9Risc3QfPqBUvKofHmBQ7wMtjvM"}, http.StatusBadRequest},
		{"empty", ChallengeRequest{}, http.StatusBadRequest},
		{"malformed json", `{"address":`, http.StatusBadRequest},
		{"unknown field", M{"addr": "x"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, http.MethodPost, srv.URL+"/auth/challenge", "", tt.body)
			assert.Equal(t, tt.status, status, out)
			if tt.status == http.StatusOK {
				assert.Contains(t, out["message"], "aasdf.test wants you to sign in")
			} else {
				assert.NotEmpty(t, out["error"])
			}
		})
	}
}

func TestServer_Verify(t *testing.T) {
	srv := newTestServer(t)
	w, err := wallet.MakeWallet()
	require.NoError(t, err)

	challenge := func() M {
		status, c := do(t, http.MethodPost, srv.URL+"/auth/challenge", "", ChallengeRequest{Address: w.Address()})
		require.Equal(t, http.StatusOK, status)
		return c
	}

	t.Run("malformed signature", func(t *testing.T) {
		c := challenge()
		status, out := do(t, http.MethodPost, srv.URL+"/auth/verify", "", VerifyRequest{ChallengeID: c["id"].(string), Signature: "abc!def"})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, out["error"], "invalid character")
	})

	t.Run("mismatch", func(t *testing.T) {
		c := challenge()
		status, _ := do(t, http.MethodPost, srv.URL+"/auth/verify", "", VerifyRequest{
			ChallengeID: c["id"].(string),
			Signature:   base58.Encode(make([]byte, 64)),
		})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("unknown challenge", func(t *testing.T) {
		status, _ := do(t, http.MethodPost, srv.URL+"/auth/verify", "", VerifyRequest{ChallengeID: "nope", Signature: "nope"})
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("replay", func(t *testing.T) {
		c := challenge()
		req := VerifyRequest{ChallengeID: c["id"].(string), Signature: w.Sign([]byte(c["message"].(string)))}

		status, _ := do(t, http.MethodPost, srv.URL+"/auth/verify", "", req)
		require.Equal(t, http.StatusOK, status)
		status, _ = do(t, http.MethodPost, srv.URL+"/auth/verify", "", req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestServer_SessionWithoutToken(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, http.MethodGet, srv.URL+"/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = do(t, http.MethodDelete, srv.URL+"/auth/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("Request-Id"))
}

func TestServer_InternalError(t *testing.T) {
	s, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)
	srv := httptest.NewServer(New(auth.New(s, auth.Options{}), zerolog.Nop()))
	defer srv.Close()

	// every store call fails once the database is closed
	require.NoError(t, s.Close())

	status, out := do(t, http.MethodPost, srv.URL+"/auth/challenge", "", ChallengeRequest{Address: "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, M{"error": "Internal Server Error"}, out)
}

func TestBearerToken(t *testing.T) {
	for header, want := range map[string]string{
		"Bearer abc":   "abc",
		"bearer abc ":  "abc",
		"Basic abc":    "",
		"Bearer ":      "",
		"":             "",
		"Bearerabcdef": "",
	} {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", header)
		got, ok := bearerToken(r)
		assert.Equal(t, want, got, header)
		assert.Equal(t, want != "", ok, header)
	}
}

type closeRecorder struct{ closed bool }

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestServer_Serve(t *testing.T) {
	s, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := New(auth.New(s, auth.Options{}), zerolog.Nop())
	d := death.NewDeath(syscall.SIGUSR2)
	rec := &closeRecorder{}

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln, d, s, rec) }()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	var serveErr error
	require.Eventually(t, func() bool {
		d.FallOnSword()
		select {
		case serveErr = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.NoError(t, serveErr)
	assert.True(t, rec.closed)
	_, err = (&http.Client{Transport: &http.Transport{DisableKeepAlives: true}}).Get("http://" + ln.Addr().String() + "/healthz")
	assert.Error(t, err, "listener closed")
}

func TestServer_ListenAndServeAddrInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	s, err := store.Open(store.Options{InMemory: true})
	require.NoError(t, err)
	rec := &closeRecorder{}

	err = New(auth.New(s, auth.Options{}), zerolog.Nop()).ListenAndServe(ln.Addr().String(), s, rec)
	assert.Error(t, err)
	assert.True(t, rec.closed)
	assert.True(t, s.Database.IsClosed())
}
