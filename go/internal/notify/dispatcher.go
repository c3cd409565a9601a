package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcastro/voteboard/go/internal/models"
	"github.com/mcastro/voteboard/go/internal/votes"
)

// EmailSender delivers a single message. Implementations live under clients/.
type EmailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// Dispatcher formats and sends the post-submission confirmation email.
// Every failure here is logged and swallowed; the vote is already committed
// and must never be rolled back over a notification problem.
type Dispatcher struct {
	sender EmailSender
}

// NewDispatcher creates a dispatcher. A nil sender disables sending, which
// keeps local setups working without SES credentials.
func NewDispatcher(sender EmailSender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<html>
<body>
<h2>Vote Confirmation</h2>
<p>Hi {{.JudgeName}},</p>
<p>Your votes for <strong>{{.TeamName}}</strong> have been recorded:</p>
<ul>
{{- range .Lines}}
<li><strong>{{.Criterion}}</strong>: {{if .Value}}Yes{{else}}No{{end}}{{if .Comment}} &mdash; {{.Comment}}{{end}}</li>
{{- end}}
</ul>
<p>Thank you for judging!</p>
</body>
</html>`))

type confirmationData struct {
	JudgeName string
	TeamName  string
	Lines     []votes.VoteLine
}

// VotesSubmitted sends one confirmation per submission and reports whether
// the message went out.
func (d *Dispatcher) VotesSubmitted(ctx context.Context, judge models.Judge, team models.Team, lines []votes.VoteLine) bool {
	if d.sender == nil {
		log.Debug().Str("judge_email", judge.Email).Msg("email sending disabled, skipping confirmation")
		return false
	}

	data := confirmationData{
		JudgeName: judge.Name,
		TeamName:  team.Name,
		Lines:     lines,
	}

	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		log.Warn().Err(err).Msg("failed to render confirmation email")
		return false
	}

	subject := fmt.Sprintf("Vote confirmation: %s", team.Name)
	if err := d.sender.Send(ctx, judge.Email, subject, html.String(), textBody(data)); err != nil {
		log.Warn().
			Err(err).
			Str("judge_email", judge.Email).
			Str("team", team.Name).
			Msg("failed to send confirmation email")
		return false
	}

	log.Info().Str("judge_email", judge.Email).Str("team", team.Name).Msg("sent confirmation email")
	return true
}

func textBody(data confirmationData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour votes for %s have been recorded:\n\n", data.JudgeName, data.TeamName)
	for _, line := range data.Lines {
		answer := "No"
		if line.Value {
			answer = "Yes"
		}
		fmt.Fprintf(&b, "- %s: %s", line.Criterion, answer)
		if line.Comment != "" {
			fmt.Fprintf(&b, " (%s)", line.Comment)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nThank you for judging!\n")
	return b.String()
}
