package classifier

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sairajesh711/premier-top6/internal/errors"
	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/repository"
)

// Fixed strings of the decision procedure.
const (
	// bannedFirstPick triggers the deterministic hard rule without spending
	// an external call.
	bannedFirstPick = "tottenham"

	// hardRuleReason is returned to the voter when the hard rule fires.
	hardRuleReason = "Tottenham? lol."

	// hardRuleLogReason is what lands in the audit log for that case.
	hardRuleLogReason = "Tottenham at #1 hard-block"

	// placeholderReason is a known junk value some model replies carry.
	placeholderReason = "short"

	// genericReason substitutes an empty or placeholder troll reason.
	genericReason = "Are you trolling?"
)

// Checker runs the two-stage troll decision: a deterministic first-pick rule,
// then the external model as a soft gate. Model replies that cannot be parsed
// are treated as reasonable; availability of voting wins over strictness.
type Checker struct {
	log    logger.Logger
	client Client
	logs   repository.TrollLogRepository
}

// NewChecker creates a Checker. A nil client disables the external stage;
// only the hard rule applies then.
func NewChecker(log logger.Logger, client Client, logs repository.TrollLogRepository) *Checker {
	return &Checker{log: log, client: client, logs: logs}
}

// Check classifies a ballot. ip identifies the submitting client for the
// audit log ("unknown" when the origin could not be determined). A transport
// failure of the external call is returned as an error and fails the
// submission; a malformed reply is not an error.
func (c *Checker) Check(ctx context.Context, picks []string, ip string) (models.Verdict, error) {
	if len(picks) > 0 && strings.ToLower(picks[0]) == bannedFirstPick {
		c.logTroll(ctx, picks, hardRuleLogReason, ip)
		return models.Verdict{Verdict: models.VerdictTroll, Reason: hardRuleReason}, nil
	}

	if c.client == nil {
		return models.Verdict{Verdict: models.VerdictReasonable}, nil
	}

	raw, err := c.client.Classify(ctx, picks)
	if err != nil {
		return models.Verdict{}, errors.Unavailable("classification failed", err)
	}

	verdict := parseVerdict(raw)

	if verdict.IsTroll() {
		c.logTroll(ctx, picks, verdict.Reason, ip)
	}

	return verdict, nil
}

// parseVerdict decodes the model's reply defensively. Any parse failure, and
// any reply that does not positively say "troll", resolves to reasonable. A
// troll verdict with a missing or placeholder reason gets the generic one.
func parseVerdict(raw string) models.Verdict {
	var parsed models.Verdict
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return models.Verdict{Verdict: models.VerdictReasonable}
	}

	if parsed.Verdict != models.VerdictTroll {
		return models.Verdict{Verdict: models.VerdictReasonable}
	}

	reason := strings.TrimSpace(parsed.Reason)
	if reason == "" || reason == placeholderReason {
		reason = genericReason
	}
	return models.Verdict{Verdict: models.VerdictTroll, Reason: reason}
}

// logTroll appends the audit entry. The log is best effort: a failed write is
// reported but never blocks the verdict.
func (c *Checker) logTroll(ctx context.Context, picks []string, reason, ip string) {
	record := models.TrollLogRecord{Picks: picks, Reason: reason, IP: ip}
	if err := c.logs.InsertTrollLog(ctx, record); err != nil {
		c.log.Warn("Failed to write troll log", "error", err, "reason", reason)
		return
	}
	first := ""
	if len(picks) > 0 {
		first = picks[0]
	}
	c.log.Info("Troll ballot logged", "reason", reason, "ip", ip, "first_pick", first)
}
