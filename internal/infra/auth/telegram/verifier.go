// Package telegram verifies Telegram login widget payloads.
//
// The widget signs the login data with HMAC-SHA256 keyed by the SHA256 of the
// bot token, over a newline-joined "key=value" list sorted by key, with the
// hash field itself excluded. See https://core.telegram.org/widgets/login.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"passport/config"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

// clockSkew is the tolerance for auth_date timestamps slightly ahead of this
// host's clock.
const clockSkew = time.Minute

// Verifier is a concrete implementation of the PlatformVerifier interface.
type Verifier struct {
	secret    []byte
	freshness time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewVerifier derives the HMAC key from the configured bot token.
func NewVerifier(cfg *config.Config, logger *slog.Logger) (service.PlatformVerifier, error) {
	if cfg.Telegram == nil || cfg.Telegram.BotToken == "" {
		return nil, errors.New("telegram bot token must be provided")
	}

	return newVerifier(cfg.Telegram.BotToken, cfg.Telegram.FreshnessWindow, time.Now, logger), nil
}

func newVerifier(botToken string, freshness time.Duration, now func() time.Time, logger *slog.Logger) *Verifier {
	secret := sha256.Sum256([]byte(botToken))

	return &Verifier{
		secret:    secret[:],
		freshness: freshness,
		now:       now,
		logger:    logger,
	}
}

// Verify checks the payload signature and freshness and returns the platform
// identity it attests to. Signature and freshness failures are both reported
// as invalid assertions.
func (v *Verifier) Verify(payload *service.PlatformLoginPayload) (*service.PlatformIdentity, error) {
	if payload == nil || payload.ID == "" || payload.Hash == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "login payload is incomplete")
	}

	expected := v.sign(checkString(payload))
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(payload.Hash))) {
		v.logger.Warn("Login payload signature mismatch", slog.String("platformId", payload.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "login payload signature mismatch")
	}

	issued := time.Unix(payload.AuthDate, 0)
	age := v.now().Sub(issued)
	if age > v.freshness {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "login payload is too old")
	}
	if age < -clockSkew {
		return nil, errors.Wrap(domainerrors.ErrInvalidAssertion, "login payload is from the future")
	}

	return &service.PlatformIdentity{
		PlatformID: payload.ID,
		Name:       displayName(payload),
	}, nil
}

func (v *Verifier) sign(data string) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(data))

	return hex.EncodeToString(mac.Sum(nil))
}

// checkString builds the data-check-string of the login widget protocol.
// Optional fields are only included when the widget sent them.
func checkString(payload *service.PlatformLoginPayload) string {
	fields := map[string]string{
		"auth_date": strconv.FormatInt(payload.AuthDate, 10),
		"id":        payload.ID,
	}
	if payload.FirstName != "" {
		fields["first_name"] = payload.FirstName
	}
	if payload.LastName != "" {
		fields["last_name"] = payload.LastName
	}
	if payload.Username != "" {
		fields["username"] = payload.Username
	}
	if payload.PhotoURL != "" {
		fields["photo_url"] = payload.PhotoURL
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+fields[key])
	}

	return strings.Join(lines, "\n")
}

func displayName(payload *service.PlatformLoginPayload) string {
	name := strings.TrimSpace(payload.FirstName + " " + payload.LastName)
	if name == "" {
		name = payload.Username
	}

	return name
}
