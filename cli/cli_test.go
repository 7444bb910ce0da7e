package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golang-walletauth/auth"
	"github.com/golang-walletauth/base58"
	"github.com/golang-walletauth/store"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-format", "json", "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"encode arg", "", []string{"encode", "Hello World!"}, "2NEpo7TZRRrLZSi2U\n"},
		{"encode stdin", "Hello World!", []string{"encode"}, "2NEpo7TZRRrLZSi2U\n"},
		{"encode stdin drops one newline", "hi\n", []string{"encode"}, "8wr\n"},
		{"encode stdin drops crlf", "hi\r\n", []string{"encode"}, "8wr\n"},
		{"encode stdin keeps inner newlines", "hi\n\n", []string{"encode"}, "c55T\n"},
		{"encode hex", "", []string{"encode", "--hex", "000000010203"}, "111Ldp\n"},
		{"encode hex stdin", "010203\n", []string{"encode", "--hex", "--check"}, "13DV5niCGP\n"},
		{"encode check empty", "", []string{"encode", "--check", ""}, "1Wh4bh\n"},
		{"decode", "", []string{"decode", "111Ldp"}, "000000010203\n"},
		{"decode check", "", []string{"decode", "--check", "13DV5niCGP"}, "version: 0\npayload: 010203\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := run(t, "", "decode", "2NEpo7TZRRrLZSi2O")
	assert.ErrorIs(t, err, base58.ErrInvalidCharacter)

	_, err = run(t, "", "decode", "--check", "13DV5niCGQ")
	assert.ErrorIs(t, err, base58.ErrChecksum)

	_, err = run(t, "", "encode", "--hex", "zz")
	assert.Error(t, err)
}

func TestWalletCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "", "--data-dir", dir, "createwallet")
	require.NoError(t, err)
	address := strings.TrimSpace(strings.TrimPrefix(out, "New wallet created with address: "))
	pub, err := base58.Decode(address)
	require.NoError(t, err)
	assert.Len(t, pub, 32)

	out, err = run(t, "", "--data-dir", dir, "listaddresses")
	require.NoError(t, err)
	assert.Equal(t, address+"\n", out)

	// a different profile has its own wallet file
	out, err = run(t, "", "--data-dir", dir, "--profile", "other", "listaddresses")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, "", "--data-dir", dir, "sign", "--address", address, "--message", "hello")
	require.NoError(t, err)
	signature := strings.TrimSpace(out)

	out, err = run(t, "", "verify", "--address", address, "--message", "hello", "--signature", signature)
	require.NoError(t, err)
	assert.Equal(t, "Signature is valid\n", out)

	_, err = run(t, "", "verify", "--address", address, "--message", "bye", "--signature", signature)
	assert.Error(t, err)

	_, err = run(t, "", "--data-dir", dir, "sign", "--address", "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z", "--message", "hello")
	assert.Error(t, err)

	out, err = run(t, "", "--data-dir", dir, "listaddresses", "--legacy")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.Len(t, fields, 2)
	assert.Equal(t, address, fields[0])
	assert.True(t, strings.HasPrefix(fields[1], "1"))
}

func TestValidateAddress(t *testing.T) {
	out, err := run(t, "", "validateaddress", "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z")
	require.NoError(t, err)
	assert.Contains(t, out, "valid ed25519 address")

	out, err = run(t, "", "validateaddress", "1EoY7BwXeKEjxASqqy7XTGXucjHgXvENZh")
	require.NoError(t, err)
	assert.Contains(t, out, "valid legacy address")

	_, err = run(t, "", "validateaddress", "1EoY7BwXeKEjxASqqy7XTGXucjHgXvENZi")
	assert.Error(t, err)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(store.Options{Dir: filepath.Join(dir, sessionsDir)})
	require.NoError(t, err)
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, s.PutSession(context.Background(), &auth.Session{
			Token:     auth.NewRandomToken().String(),
			Address:   "FVen3X669xLzsi6N2V91DoiyzHzg1uAgqiT8jZ9nS96Z",
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
		}))
	}
	require.NoError(t, s.Close())

	_, err = run(t, "", "--data-dir", dir, "purge")
	assert.Error(t, err)

	out, err := run(t, "", "--data-dir", dir, "purge", "--sessions", "--challenges", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "challenges: 0\nsessions: 3\n", out)

	out, err = run(t, "", "--data-dir", dir, "purge", "--sessions")
	require.NoError(t, err)
	assert.Equal(t, "sessions: 3\n", out)

	out, err = run(t, "", "--data-dir", dir, "purge", "--sessions", "--dry-run")
	require.NoError(t, err)
	assert.Equal(t, "sessions: 0\n", out)
}

func TestInvalidConfig(t *testing.T) {
	_, err := run(t, "", "--log-format", "xml", "encode", "a")
	assert.Error(t, err)
}
