package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersBeforeRegisterAreNoops(t *testing.T) {
	if httpRequestsTotal != nil {
		t.Skip("metrics already registered in this binary")
	}
	IncRequest("GET", "/api/results", 200)
	IncVote()
	IncConnectAttempt("failure")
}

func TestCountersAfterRegister(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(votesRecordedTotal)
	IncVote()
	IncVote()
	IncVote()
	if got := testutil.ToFloat64(votesRecordedTotal) - before; got != 3 {
		t.Fatalf("expected 3 votes, got %v", got)
	}
	if n := testutil.CollectAndCount(votesRecordedTotal); n != 1 {
		t.Fatalf("expected a single vote series, got %d", n)
	}

	IncConnectAttempt("failure")
	if got := testutil.ToFloat64(dbConnectAttempts.WithLabelValues("failure")); got != 1 {
		t.Fatalf("expected 1 failed attempt, got %v", got)
	}

	IncRequest("POST", "/api/vote", 200)
	if got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/vote", "200")); got != 1 {
		t.Fatalf("expected 1 request, got %v", got)
	}
}
