package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/anthlasserre/perf-tracker-api/internal/club"
	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/anthlasserre/perf-tracker-api/internal/metrics"
	"github.com/anthlasserre/perf-tracker-api/internal/notifier"
	"github.com/anthlasserre/perf-tracker-api/internal/stats"
	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface

func (s *Notifier) SendMatchRecorded(rec *match.Record, dryRun bool) error {
	msg := s.formatMatchRecorded(rec)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendVideoUploaded(rec *match.Record, dryRun bool) error {
	msg := s.formatVideoUploaded(rec)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendInvitation(inv *club.Invitation, clubName string, dryRun bool) error {
	msg := s.formatInvitation(inv, clubName)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// formatMatchRecorded creates the Slack message for a freshly recorded match using Block Kit.
func (s *Notifier) formatMatchRecorded(rec *match.Record) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🏉 New match recorded! 🏉", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	detailsText := fmt.Sprintf("Player: %s\nOpponent: %s\nPosition: %s\nDate: %s",
		rec.PlayerName,
		rec.Opponent,
		rec.Position,
		formatTime(rec.CreatedAt),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Tally
	agg := stats.Aggregate([]*match.Record{rec})
	tallyText := fmt.Sprintf("Points: %d | Tries: %d | Conversions: %d | Penalties: %d | Faults: %d",
		agg.Points,
		agg.Tries,
		agg.Conversions,
		agg.Penalties,
		agg.Faults,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", tallyText, true, false), nil, nil))

	// Context
	contextText := fmt.Sprintf("Play time: %d min | Rating: %d/10", rec.PlayTime, rec.PerformanceRating)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatVideoUploaded creates the Slack message for a match that gained a video replay.
func (s *Notifier) formatVideoUploaded(rec *match.Record) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "🎥 Match video available! 🎥", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details
	detailsText := fmt.Sprintf("%s vs %s, %s", rec.PlayerName, rec.Opponent, formatTime(rec.CreatedAt))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, false, false), nil, nil))

	if rec.VideoURL != "" {
		linkText := fmt.Sprintf("<%s|Watch the replay>", rec.VideoURL)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", linkText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatInvitation creates the Slack message announcing a club invitation.
func (s *Notifier) formatInvitation(inv *club.Invitation, clubName string) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header
	headerText := slack.NewTextBlockObject("plain_text", "📨 Club invitation sent 📨", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s has been invited to join %s.", inv.Email, clubName)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Context
	expiryText := fmt.Sprintf("Expires: %s", formatTime(inv.ExpiresAt))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", expiryText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

func formatTime(epoch int64) string {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.Unix(epoch, 0).Format("Monday 02 Jan, 15:04")
	}
	return time.Unix(epoch, 0).In(loc).Format("Monday 02 Jan, 15:04")
}
