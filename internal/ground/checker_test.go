package ground

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lexdrift/lexdrift/internal/llm"
	"github.com/lexdrift/lexdrift/internal/model"
)

type stubProvider struct {
	resp   *llm.EntailmentResponse
	err    error
	called int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Entail(ctx context.Context, req llm.EntailmentRequest) (*llm.EntailmentResponse, error) {
	s.called++
	return s.resp, s.err
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testConfig() model.GroundConfig {
	return model.DefaultConfig().Ground
}

func TestExtractClaims(t *testing.T) {
	answer := "First sentence about service [1]. Second point on costs [2]."

	claims := ExtractClaims(answer)
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Marker != 1 || claims[0].Claim != "First sentence about service" {
		t.Errorf("claim 1 = %+v", claims[0])
	}
	if claims[1].Marker != 2 || claims[1].Claim != "Second point on costs" {
		t.Errorf("claim 2 = %+v", claims[1])
	}
}

func TestExtractClaimsNoMarkers(t *testing.T) {
	if claims := ExtractClaims("No markers in this answer at all."); claims != nil {
		t.Errorf("expected nil, got %+v", claims)
	}
}

func TestCheckConflictingFigure(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	answer := "Service must occur within 14 days [2]."
	chunks := []string{
		"The claim form may be used in all claims.",
		"Where the claim form is served within the jurisdiction, the particulars of claim must be served within 28 days.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 {
		t.Fatalf("expected 1 verdict, got %d", len(verdicts))
	}
	v := verdicts[0]
	if v.Supported {
		t.Error("conflicting figure should not be supported")
	}
	if v.Method != "lexical" {
		t.Errorf("method = %q, want lexical", v.Method)
	}
	if !strings.Contains(v.Reason, "14") || !strings.Contains(v.Reason, "28") {
		t.Errorf("reason should name both figures, got %q", v.Reason)
	}
}

func TestCheckHighOverlapSupported(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	answer := "The claim form must be served within the jurisdiction [1]."
	chunks := []string{
		"The claim form must be served within the jurisdiction no later than 4 months after the date of issue.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 || !verdicts[0].Supported {
		t.Fatalf("expected supported verdict, got %+v", verdicts)
	}
	if verdicts[0].Method != "lexical" {
		t.Errorf("method = %q, want lexical", verdicts[0].Method)
	}
}

func TestCheckCitationMatchSupported(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	// Overlap alone lands in the inconclusive band; the shared CPR 3.9
	// reference is what ties claim to evidence.
	answer := "A party who fails to comply with a rule may seek relief from sanctions under CPR 3.9 [1]."
	chunks := []string{
		"CPR 3.9 provides that on an application for relief from any sanction the court will consider all the circumstances.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 || !verdicts[0].Supported {
		t.Fatalf("expected supported verdict, got %+v", verdicts)
	}
}

func TestCheckLowOverlapUnsupported(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	answer := "Hearsay evidence rules differ in criminal proceedings [1]."
	chunks := []string{
		"The court has discretion as to whether costs are payable by one party to another.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 {
		t.Fatalf("expected 1 verdict, got %d", len(verdicts))
	}
	if verdicts[0].Supported {
		t.Error("unrelated chunk should not support the claim")
	}
	if verdicts[0].Reason == "" {
		t.Error("unsupported verdict must carry a reason")
	}
}

func TestCheckInconclusiveWithoutProvider(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	answer := "Witness statements must contain a statement of truth [1]."
	chunks := []string{
		"A witness statement is a written statement signed by a person which contains the evidence which that person would be allowed to give orally.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 {
		t.Fatalf("expected 1 verdict, got %d", len(verdicts))
	}
	if verdicts[0].Supported {
		t.Error("inconclusive claim without a provider must report unsupported")
	}
	if !strings.Contains(verdicts[0].Reason, "no entailment provider") {
		t.Errorf("reason = %q", verdicts[0].Reason)
	}
}

func TestCheckInconclusiveEscalatesToProvider(t *testing.T) {
	provider := &stubProvider{resp: &llm.EntailmentResponse{Supported: true, Reason: ""}}
	checker := NewChecker(nil, provider, testConfig())

	answer := "Witness statements must contain a statement of truth [1]."
	chunks := []string{
		"A witness statement is a written statement signed by a person which contains the evidence which that person would be allowed to give orally.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if provider.called != 1 {
		t.Fatalf("provider called %d times, want 1", provider.called)
	}
	if len(verdicts) != 1 || !verdicts[0].Supported {
		t.Fatalf("expected provider verdict supported, got %+v", verdicts)
	}
	if verdicts[0].Method != "semantic" {
		t.Errorf("method = %q, want semantic", verdicts[0].Method)
	}
}

func TestCheckProviderErrorFallsBackUnsupported(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	checker := NewChecker(nil, provider, testConfig())

	answer := "Witness statements must contain a statement of truth [1]."
	chunks := []string{
		"A witness statement is a written statement signed by a person which contains the evidence which that person would be allowed to give orally.",
	}

	verdicts := checker.Check(context.Background(), answer, chunks)
	if len(verdicts) != 1 || verdicts[0].Supported {
		t.Fatalf("expected unsupported on provider failure, got %+v", verdicts)
	}
	if !strings.Contains(verdicts[0].Reason, "entailment check failed") {
		t.Errorf("reason = %q", verdicts[0].Reason)
	}
}

func TestCheckDecisiveClaimsSkipProvider(t *testing.T) {
	provider := &stubProvider{resp: &llm.EntailmentResponse{Supported: true}}
	checker := NewChecker(nil, provider, testConfig())

	answer := "Service must occur within 14 days [1]."
	chunks := []string{
		"The particulars of claim must be served within 28 days.",
	}

	checker.Check(context.Background(), answer, chunks)
	if provider.called != 0 {
		t.Errorf("decisive lexical verdict should not reach the provider, called %d times", provider.called)
	}
}

func TestCheckMarkerOutOfRange(t *testing.T) {
	checker := NewChecker(nil, nil, testConfig())

	verdicts := checker.Check(context.Background(), "Everything is fine [9].", []string{"only chunk"})
	if len(verdicts) != 1 || verdicts[0].Supported {
		t.Fatalf("expected unsupported verdict, got %+v", verdicts)
	}
	if !strings.Contains(verdicts[0].Reason, "[9]") {
		t.Errorf("reason = %q", verdicts[0].Reason)
	}
}

func TestOverlapRatioIgnoresCaseAndPunctuation(t *testing.T) {
	r := overlapRatio("Service of the Claim Form", "service of the claim form, generally")
	if r != 1.0 {
		t.Errorf("overlap = %v, want 1.0", r)
	}
}
