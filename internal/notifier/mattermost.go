// Package notifier posts plain-text alerts to a Mattermost-style chat webhook.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cesargomez89/episodarr/internal/constants"
	"github.com/cesargomez89/episodarr/internal/logger"
)

// Settings controls which events are announced and where they are sent.
type Settings struct {
	Enabled                bool
	WebhookURL             string
	BaseURL                string
	Username               string
	NotifySnatch           bool
	NotifyDownload         bool
	NotifySubtitleDownload bool
}

// Messages holds the localized labels used to build notification text.
type Messages struct {
	Snatch           string
	Download         string
	SubtitleDownload string
	Update           string
	UpdateText       string
	Login            string
	LoginText        string // formatted with the IP address as %[1]s
	Test             string
}

// DefaultMessages returns the built-in English labels.
func DefaultMessages() Messages {
	return Messages{
		Snatch:           constants.LabelSnatch,
		Download:         constants.LabelDownload,
		SubtitleDownload: constants.LabelSubtitleDownload,
		Update:           constants.LabelUpdate,
		UpdateText:       constants.LabelUpdateText,
		Login:            constants.LabelLogin,
		LoginText:        constants.LabelLoginText,
		Test:             constants.LabelTest,
	}
}

type payload struct {
	Text     string `json:"text"`
	Username string `json:"username"`
}

// Notifier sends one webhook request per event. It never returns errors to
// callers; failures are logged and reported as false.
type Notifier struct {
	client   *http.Client
	logger   *logger.Logger
	messages Messages
	settings Settings
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithHTTPClient overrides the client used for webhook requests.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		if c != nil {
			n.client = c
		}
	}
}

// WithMessages overrides the notification labels.
func WithMessages(m Messages) Option {
	return func(n *Notifier) {
		n.messages = m
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// New builds a Notifier, defaulting the bot name when settings leave it empty.
func New(settings Settings, opts ...Option) *Notifier {
	if settings.Username == "" {
		settings.Username = constants.DefaultBotName
	}
	n := &Notifier{
		client:   &http.Client{Timeout: constants.DefaultHTTPTimeout},
		logger:   logger.Default(),
		messages: DefaultMessages(),
		settings: settings,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.logger = n.logger.WithComponent("mattermost")
	return n
}

// NotifySnatch announces that a release was sent to the downloader.
func (n *Notifier) NotifySnatch(ctx context.Context, epName string) bool {
	if !n.settings.NotifySnatch {
		return false
	}
	return n.notify(ctx, n.messages.Snatch+": "+epName, false)
}

// NotifyDownload announces a finished download.
func (n *Notifier) NotifyDownload(ctx context.Context, epName string) bool {
	if !n.settings.NotifyDownload {
		return false
	}
	return n.notify(ctx, n.messages.Download+": "+epName, false)
}

// NotifySubtitleDownload announces new subtitles in lang for an episode.
func (n *Notifier) NotifySubtitleDownload(ctx context.Context, epName, lang string) bool {
	if !n.settings.NotifySubtitleDownload {
		return false
	}
	return n.notify(ctx, n.messages.SubtitleDownload+" "+epName+": "+lang, false)
}

// NotifyUpdate announces that a new application version is available.
// An empty version is reported as "??".
func (n *Notifier) NotifyUpdate(ctx context.Context, newVersion string) bool {
	if !n.settings.Enabled {
		return false
	}
	if newVersion == "" {
		newVersion = constants.DefaultVersion
	}
	return n.notify(ctx, n.messages.Update+" - "+n.messages.UpdateText+newVersion, false)
}

// NotifyLogin announces a login from a previously unseen address.
func (n *Notifier) NotifyLogin(ctx context.Context, ipAddress string) bool {
	if !n.settings.Enabled {
		return false
	}
	return n.notify(ctx, n.messages.Login+" - "+fmt.Sprintf(n.messages.LoginText, ipAddress), false)
}

// Test sends a fixed message regardless of the enabled flag.
func (n *Notifier) Test(ctx context.Context) bool {
	return n.notify(ctx, n.messages.Test, true)
}

func (n *Notifier) notify(ctx context.Context, message string, force bool) bool {
	if !n.settings.Enabled && !force {
		return false
	}
	return n.send(ctx, message)
}

// WebhookURL resolves the destination. The configured webhook may be either
// a full URL or a suffix of BaseURL.
func (n *Notifier) WebhookURL() string {
	base := n.settings.BaseURL
	if base == "" {
		return n.settings.WebhookURL
	}
	return base + strings.ReplaceAll(n.settings.WebhookURL, base, "")
}

func (n *Notifier) send(ctx context.Context, message string) bool {
	webhook := n.WebhookURL()

	n.logger.Info("Sending Mattermost message", "message", message)
	n.logger.Debug("Sending Mattermost message to url", "url", webhook)

	body, err := json.Marshal(payload{Text: message, Username: n.settings.Username})
	if err != nil {
		n.logger.Error("Error encoding Mattermost message", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("Error sending Mattermost message", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Error("Error sending Mattermost message", "error", err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.logger.Error("Error sending Mattermost message", "status", resp.StatusCode)
		return false
	}

	return true
}
