package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/sairajesh711/premier-top6/internal/classifier"
	"github.com/sairajesh711/premier-top6/internal/errors"
	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/internal/models"
	"github.com/sairajesh711/premier-top6/internal/repository/mock"
	"github.com/sairajesh711/premier-top6/internal/services"
	"github.com/sairajesh711/premier-top6/internal/testutil"
)

// newVotingFixture wires a voting service against an in-memory repository and
// a mock classifier so both the write and the audit paths are real.
func newVotingFixture(t *testing.T, client classifier.Client, autofixEnabled bool) (*services.VotingService, *mock.Repository) {
	t.Helper()

	log := logger.New()
	repo := mock.NewRepository(testutil.NewTestRepository(t))
	checker := classifier.NewChecker(log, client, repo)
	svc := services.NewVotingService(log, repo, checker, autofixEnabled)
	return svc, repo
}

func TestSubmit_EmptyPicks(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), true)

	_, err := svc.Submit(context.Background(), nil, "", false)
	if !stderrors.Is(err, services.ErrEmptyPicks) {
		t.Errorf("expected ErrEmptyPicks, got %v", err)
	}
	if repo.InsertVoteCalls != 0 {
		t.Errorf("InsertVoteCalls = %d, want 0", repo.InsertVoteCalls)
	}
}

func TestSubmit_InvalidBallot(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), true)

	_, err := svc.Submit(context.Background(), []string{"Leeds"}, "", false)
	if err == nil {
		t.Fatal("expected validation error for unknown club")
	}

	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if repo.InsertVoteCalls != 0 {
		t.Errorf("InsertVoteCalls = %d, want 0", repo.InsertVoteCalls)
	}
}

func TestSubmit_Accepted_WritesFullRecord(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), true)
	ctx := context.Background()

	result, err := svc.Submit(ctx, []string{"Liverpool", "Arsenal"}, "", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Status != services.StatusAccepted {
		t.Errorf("status = %q, want accepted", result.Status)
	}

	votes, err := repo.ListVotes(ctx)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected 1 persisted vote, got %d", len(votes))
	}

	row := votes[0]
	if row["liverpool"] != 1 {
		t.Errorf("liverpool = %d, want 1", row["liverpool"])
	}
	if row["arsenal"] != 2 {
		t.Errorf("arsenal = %d, want 2", row["arsenal"])
	}
	for _, key := range models.ClubKeys() {
		if key == "liverpool" || key == "arsenal" {
			continue
		}
		if row[key] != models.SentinelRank {
			t.Errorf("%s = %d, want %d", key, row[key], models.SentinelRank)
		}
	}
}

func TestSubmit_TottenhamFirst_BlockedWithoutWrite(t *testing.T) {
	client := classifier.NewMockClient()
	svc, repo := newVotingFixture(t, client, true)
	ctx := context.Background()

	result, err := svc.Submit(ctx, []string{"Tottenham", "Liverpool"}, "198.51.100.1", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if result.Status != services.StatusBlocked {
		t.Errorf("status = %q, want blocked", result.Status)
	}
	if result.Verdict.Reason != "Tottenham? lol." {
		t.Errorf("reason = %q, want %q", result.Verdict.Reason, "Tottenham? lol.")
	}
	if !result.CanAutofix {
		t.Error("blocked result should offer autofix when enabled")
	}
	if client.Calls() != 0 {
		t.Errorf("hard rule must not call the classifier, got %d calls", client.Calls())
	}

	count, err := repo.CountVotes(ctx)
	if err != nil {
		t.Fatalf("CountVotes failed: %v", err)
	}
	if count != 0 {
		t.Errorf("blocked ballot wrote %d votes, want 0", count)
	}

	logs, err := repo.ListTrollLogs(ctx)
	if err != nil {
		t.Fatalf("ListTrollLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected exactly 1 troll log row, got %d", len(logs))
	}
	if logs[0].IP != "198.51.100.1" {
		t.Errorf("logged ip = %q", logs[0].IP)
	}
}

func TestSubmit_BlockedByClassifier_NoAutofixWhenDisabled(t *testing.T) {
	client := classifier.NewMockClient(classifier.WithResponse(`{"verdict":"troll","reason":"nope"}`))
	svc, _ := newVotingFixture(t, client, false)

	result, err := svc.Submit(context.Background(), []string{"Bournemouth"}, "", false)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.Status != services.StatusBlocked {
		t.Errorf("status = %q, want blocked", result.Status)
	}
	if result.CanAutofix {
		t.Error("CanAutofix must be false when autofix is disabled")
	}
}

func TestSubmit_Override_SkipsClassification(t *testing.T) {
	client := classifier.NewMockClient(classifier.WithResponse(`{"verdict":"troll","reason":"nope"}`))
	svc, repo := newVotingFixture(t, client, true)
	ctx := context.Background()

	result, err := svc.Submit(ctx, []string{"Tottenham", "Liverpool"}, "", true)
	if err != nil {
		t.Fatalf("Submit with override failed: %v", err)
	}
	if result.Status != services.StatusAccepted {
		t.Errorf("status = %q, want accepted", result.Status)
	}
	if client.Calls() != 0 {
		t.Errorf("override must skip classification, got %d calls", client.Calls())
	}

	count, err := repo.CountVotes(ctx)
	if err != nil {
		t.Fatalf("CountVotes failed: %v", err)
	}
	if count != 1 {
		t.Errorf("override write count = %d, want 1", count)
	}
}

func TestSubmit_ClassifierUnavailable_NoWrite(t *testing.T) {
	client := classifier.NewMockClient(classifier.WithError(stderrors.New("timeout")))
	svc, repo := newVotingFixture(t, client, true)

	_, err := svc.Submit(context.Background(), []string{"Liverpool"}, "", false)
	if err == nil {
		t.Fatal("expected error when the classifier is unreachable")
	}

	var appErr *errors.Error
	if !stderrors.As(err, &appErr) || appErr.Kind != errors.ErrUnavailable {
		t.Errorf("expected unavailable error, got %v", err)
	}
	if repo.InsertVoteCalls != 0 {
		t.Errorf("InsertVoteCalls = %d, want 0", repo.InsertVoteCalls)
	}
}

func TestSubmit_RepositoryFailure(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), true)
	repo.InsertVoteError = stderrors.New("database is locked")

	_, err := svc.Submit(context.Background(), []string{"Liverpool"}, "", false)
	if err == nil {
		t.Fatal("expected repository error to propagate")
	}
}

func TestAutofix_PrependsLiverpool(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), true)
	ctx := context.Background()

	result, err := svc.Autofix(ctx, []string{"Tottenham", "Arsenal"}, "")
	if err != nil {
		t.Fatalf("Autofix failed: %v", err)
	}
	if result.Status != services.StatusAccepted {
		t.Errorf("status = %q, want accepted", result.Status)
	}
	if len(result.Picks) != 3 || result.Picks[0] != "Liverpool" {
		t.Errorf("picks = %v, want Liverpool first", result.Picks)
	}

	votes, err := repo.ListVotes(ctx)
	if err != nil {
		t.Fatalf("ListVotes failed: %v", err)
	}
	if votes[0]["liverpool"] != 1 || votes[0]["tottenham"] != 2 || votes[0]["arsenal"] != 3 {
		t.Errorf("persisted ranks wrong: %v", votes[0])
	}
}

func TestAutofix_DeduplicatesLiverpool(t *testing.T) {
	svc, _ := newVotingFixture(t, classifier.NewMockClient(), true)

	result, err := svc.Autofix(context.Background(), []string{"Chelsea", "Liverpool", "Arsenal"}, "")
	if err != nil {
		t.Fatalf("Autofix failed: %v", err)
	}
	want := []string{"Liverpool", "Chelsea", "Arsenal"}
	if len(result.Picks) != len(want) {
		t.Fatalf("picks = %v, want %v", result.Picks, want)
	}
	for i := range want {
		if result.Picks[i] != want[i] {
			t.Errorf("picks[%d] = %q, want %q", i, result.Picks[i], want[i])
		}
	}
}

func TestAutofix_TruncatesToCap(t *testing.T) {
	svc, _ := newVotingFixture(t, classifier.NewMockClient(), true)

	full := []string{"Arsenal", "Chelsea", "Tottenham", "Newcastle", "Brighton", "Bournemouth"}
	result, err := svc.Autofix(context.Background(), full, "")
	if err != nil {
		t.Fatalf("Autofix failed: %v", err)
	}
	if len(result.Picks) != models.MaxPicks {
		t.Errorf("picks = %v, want %d entries", result.Picks, models.MaxPicks)
	}
	if result.Picks[0] != "Liverpool" {
		t.Errorf("first pick = %q, want Liverpool", result.Picks[0])
	}
	// Bournemouth falls off the end when Liverpool pushes everything down.
	for _, p := range result.Picks {
		if p == "Bournemouth" {
			t.Error("truncation should have dropped the last original pick")
		}
	}
}

func TestAutofix_SkipsClassification(t *testing.T) {
	client := classifier.NewMockClient(classifier.WithResponse(`{"verdict":"troll","reason":"nope"}`))
	svc, _ := newVotingFixture(t, client, true)

	_, err := svc.Autofix(context.Background(), []string{"Tottenham"}, "")
	if err != nil {
		t.Fatalf("Autofix failed: %v", err)
	}
	if client.Calls() != 0 {
		t.Errorf("autofix must not classify, got %d calls", client.Calls())
	}
}

func TestAutofix_Disabled(t *testing.T) {
	svc, repo := newVotingFixture(t, classifier.NewMockClient(), false)

	_, err := svc.Autofix(context.Background(), []string{"Tottenham"}, "")
	if !stderrors.Is(err, services.ErrAutofixDisabled) {
		t.Errorf("expected ErrAutofixDisabled, got %v", err)
	}
	if repo.InsertVoteCalls != 0 {
		t.Errorf("InsertVoteCalls = %d, want 0", repo.InsertVoteCalls)
	}
}

func TestAutofix_EmptyPicks(t *testing.T) {
	svc, _ := newVotingFixture(t, classifier.NewMockClient(), true)

	_, err := svc.Autofix(context.Background(), nil, "")
	if !stderrors.Is(err, services.ErrEmptyPicks) {
		t.Errorf("expected ErrEmptyPicks, got %v", err)
	}
}

func TestCheckPicks_DelegatesToChecker(t *testing.T) {
	svc, _ := newVotingFixture(t, classifier.NewMockClient(), true)

	verdict, err := svc.CheckPicks(context.Background(), []string{"Tottenham"}, "")
	if err != nil {
		t.Fatalf("CheckPicks failed: %v", err)
	}
	if !verdict.IsTroll() {
		t.Error("expected hard rule to fire through CheckPicks")
	}
}
