package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"veilchat/internal/domain"
)

const (
	// DefaultIssuer labels enrollments in authenticator apps.
	DefaultIssuer = "veilchat"

	defaultAttempts = 3
	codePrompt      = "Authentication code: "
)

// ErrNotEnrolled is returned when TOTP is configured but no enrollment exists.
var ErrNotEnrolled = errors.New("no authenticator enrollment (run `veilchat auth enroll`)")

// TOTP authenticates the operator with a time-based one-time code from
// an enrolled authenticator app.
type TOTP struct {
	Enrollments domain.EnrollmentStore
	Input       domain.LineReader
	Output      domain.Printer // optional
	Attempts    int
}

// Authenticate prompts for a code until one validates or the attempts
// run out. It returns early with the context error when ctx is done.
func (a *TOTP) Authenticate(ctx context.Context) (bool, error) {
	enrollment, ok, err := a.Enrollments.LoadEnrollment()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, ErrNotEnrolled
	}

	attempts := a.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	for i := 0; i < attempts; i++ {
		code, err := a.readCode(ctx)
		if err != nil {
			return false, err
		}
		if totp.Validate(strings.TrimSpace(code), enrollment.Secret) {
			return true, nil
		}
		if a.Output != nil && i+1 < attempts {
			a.Output.Notice("Invalid code, try again.")
		}
	}
	return false, nil
}

// readCode reads one line on a helper goroutine so that ctx can abandon
// the prompt.
func (a *TOTP) readCode(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := a.Input.ReadLine(codePrompt)
		ch <- result{line, err}
	}()
	select {
	case r := <-ch:
		return r.line, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Enroll creates a new TOTP secret for account, saves it and returns the
// enrollment together with the otpauth:// provisioning URL.
func Enroll(store domain.EnrollmentStore, issuer, account string) (domain.Enrollment, string, error) {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	key, err := totp.Generate(totp.GenerateOpts{Issuer: issuer, AccountName: account})
	if err != nil {
		return domain.Enrollment{}, "", err
	}
	e := domain.Enrollment{
		Issuer:     issuer,
		Account:    account,
		Secret:     key.Secret(),
		CreatedUTC: time.Now().UTC().Unix(),
	}
	if err := store.SaveEnrollment(e); err != nil {
		return domain.Enrollment{}, "", err
	}
	return e, key.URL(), nil
}

var _ domain.Authenticator = (*TOTP)(nil)
