package auth_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"veilchat/internal/auth"
	"veilchat/internal/store"
)

type lines struct{ queue []string }

func (l *lines) ReadLine(string) (string, error) {
	if len(l.queue) == 0 {
		return "", io.EOF
	}
	line := l.queue[0]
	l.queue = l.queue[1:]
	return line, nil
}

type blockingLines struct{ release chan struct{} }

func (b blockingLines) ReadLine(string) (string, error) {
	<-b.release
	return "", io.EOF
}

func enroll(t *testing.T) (*store.EnrollmentFileStore, string) {
	t.Helper()
	es := store.NewEnrollmentFileStore(filepath.Join(t.TempDir(), store.EnrollmentFilename))
	e, url, err := auth.Enroll(es, "", "alice")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "otpauth://totp/"))
	require.Equal(t, auth.DefaultIssuer, e.Issuer)
	return es, e.Secret
}

func TestTOTP_ValidCode(t *testing.T) {
	es, secret := enroll(t)
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	a := &auth.TOTP{Enrollments: es, Input: &lines{queue: []string{code}}}
	ok, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTOTP_RetriesThenAccepts(t *testing.T) {
	es, secret := enroll(t)
	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)

	a := &auth.TOTP{Enrollments: es, Input: &lines{queue: []string{"000000x", " " + code + " "}}}
	ok, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTOTP_RejectsAfterAttempts(t *testing.T) {
	es, _ := enroll(t)
	a := &auth.TOTP{Enrollments: es, Input: &lines{queue: []string{"abc", "def"}}, Attempts: 2}
	ok, err := a.Authenticate(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTOTP_NotEnrolled(t *testing.T) {
	es := store.NewEnrollmentFileStore(filepath.Join(t.TempDir(), store.EnrollmentFilename))
	a := &auth.TOTP{Enrollments: es, Input: &lines{}}
	_, err := a.Authenticate(context.Background())
	require.ErrorIs(t, err, auth.ErrNotEnrolled)
}

func TestTOTP_AbandonsPromptOnTimeout(t *testing.T) {
	es, _ := enroll(t)
	in := blockingLines{release: make(chan struct{})}
	defer close(in.release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := (&auth.TOTP{Enrollments: es, Input: in}).Authenticate(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
