package vote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

type memoryVoteRepo struct {
	mu      sync.Mutex
	votes   []Vote
	nextID  int64
	failErr error
}

func newMemoryVoteRepo() *memoryVoteRepo {
	return &memoryVoteRepo{nextID: 1}
}

func (r *memoryVoteRepo) Create(ctx context.Context, v *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	v.ID = r.nextID
	r.nextID++
	r.votes = append(r.votes, *v)
	return nil
}

func (r *memoryVoteRepo) CountByChoice(ctx context.Context) (Results, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	res := make(Results)
	for _, v := range r.votes {
		res[v.Choice]++
	}
	return res, nil
}

func TestVoteRequiresChoice(t *testing.T) {
	repo := newMemoryVoteRepo()
	svc := NewService(repo)

	if _, err := svc.Vote(context.Background(), ""); !errors.Is(err, ErrChoiceRequired) {
		t.Fatalf("expected ErrChoiceRequired, got %v", err)
	}
	if len(repo.votes) != 0 {
		t.Fatalf("nothing should be stored for an empty choice")
	}
}

func TestVoteAssignsIncreasingIDs(t *testing.T) {
	svc := NewService(newMemoryVoteRepo())
	ctx := context.Background()

	first, err := svc.Vote(ctx, "ai")
	if err != nil {
		t.Fatalf("first vote: %v", err)
	}
	second, err := svc.Vote(ctx, "ai")
	if err != nil {
		t.Fatalf("second vote: %v", err)
	}
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestVotePropagatesStoreErrors(t *testing.T) {
	repo := newMemoryVoteRepo()
	repo.failErr = errors.New("store down")
	svc := NewService(repo)

	if _, err := svc.Vote(context.Background(), "ai"); !errors.Is(err, repo.failErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if _, err := svc.Results(context.Background()); !errors.Is(err, repo.failErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestResultsScenario(t *testing.T) {
	svc := NewService(newMemoryVoteRepo())
	ctx := context.Background()

	res, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil results, got %v", res)
	}

	for _, c := range []string{"ai", "devops", "devops", "devops"} {
		if _, err := svc.Vote(ctx, c); err != nil {
			t.Fatalf("vote %s: %v", c, err)
		}
	}

	res, err = svc.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(res) != 2 || res["ai"] != 1 || res["devops"] != 3 {
		t.Fatalf("unexpected results %v", res)
	}
	if _, ok := res["blockchain"]; ok {
		t.Fatalf("choices without votes must be absent")
	}
}

func TestConcurrentVotes(t *testing.T) {
	svc := NewService(newMemoryVoteRepo())
	ctx := context.Background()

	const n, m = 25, 17
	var wg sync.WaitGroup
	errs := make(chan error, n+m)
	cast := func(choice string) {
		defer wg.Done()
		if _, err := svc.Vote(ctx, choice); err != nil {
			errs <- fmt.Errorf("vote %s: %w", choice, err)
		}
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go cast("ai")
	}
	for i := 0; i < m; i++ {
		wg.Add(1)
		go cast("devops")
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	res, err := svc.Results(ctx)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if res["ai"] != n || res["devops"] != m {
		t.Fatalf("expected ai=%d devops=%d, got %v", n, m, res)
	}
}
