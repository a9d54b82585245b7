package linkaudit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/club1938/clubhouse/internal/model"
)

type mockMemberRepo struct {
	listFn func(ctx context.Context, activeOnly bool) ([]*model.Member, error)
}

func (m *mockMemberRepo) List(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
	if m.listFn != nil {
		return m.listFn(ctx, activeOnly)
	}
	return nil, nil
}
func (m *mockMemberRepo) FindByID(ctx context.Context, id string) (*model.Member, error) {
	return nil, nil
}
func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error { return nil }
func (m *mockMemberRepo) Update(ctx context.Context, member *model.Member) error { return nil }
func (m *mockMemberRepo) Delete(ctx context.Context, id string) error            { return nil }

type mockProjectRepo struct {
	listFn func(ctx context.Context, publishedOnly bool) ([]*model.Project, error)
}

func (m *mockProjectRepo) List(ctx context.Context, publishedOnly bool) ([]*model.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, publishedOnly)
	}
	return nil, nil
}
func (m *mockProjectRepo) FindByID(ctx context.Context, id string) (*model.Project, error) {
	return nil, nil
}
func (m *mockProjectRepo) Create(ctx context.Context, project *model.Project) error { return nil }
func (m *mockProjectRepo) Update(ctx context.Context, project *model.Project) error { return nil }
func (m *mockProjectRepo) Delete(ctx context.Context, id string) error              { return nil }

type mockNewsRepo struct {
	listFn func(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error)
}

func (m *mockNewsRepo) List(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx, publishedOnly)
	}
	return nil, nil
}
func (m *mockNewsRepo) FindByID(ctx context.Context, id string) (*model.NewsItem, error) {
	return nil, nil
}
func (m *mockNewsRepo) Create(ctx context.Context, item *model.NewsItem) error { return nil }
func (m *mockNewsRepo) Update(ctx context.Context, item *model.NewsItem) error { return nil }
func (m *mockNewsRepo) Delete(ctx context.Context, id string) error            { return nil }

type mockProber struct {
	mu      sync.Mutex
	probed  []Target
	outcome Outcome
}

func (m *mockProber) Probe(ctx context.Context, target Target) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probed = append(m.probed, target)
	return m.outcome
}

type probeCollector struct {
	mu       sync.Mutex
	outcomes []string
}

func (c *probeCollector) RecordHTTPStatus(statusCode int)           {}
func (c *probeCollector) RecordSignUp()                             {}
func (c *probeCollector) RecordSignIn()                             {}
func (c *probeCollector) RecordAuthFailure(reason string)           {}
func (c *probeCollector) RecordListingQuery(collection string)      {}
func (c *probeCollector) RecordModeration(resource, op string)      {}
func (c *probeCollector) RecordSessionsCleaned(count int)           {}
func (c *probeCollector) RecordQueryLatency(duration time.Duration) {}

func (c *probeCollector) RecordLinkProbe(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, outcome)
}

func strPtr(s string) *string { return &s }

func TestRunOnce_CollectsAllLinkFields(t *testing.T) {
	memberRepo := &mockMemberRepo{
		listFn: func(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
			if activeOnly {
				t.Error("監査は非アクティブ会員も対象にすべき")
			}
			return []*model.Member{
				{ID: "m1", Name: "Jean Dupont", LinkedIn: strPtr("https://linkedin.com/in/jean"), AvatarURL: strPtr("https://cdn.example.com/jean.png")},
				{ID: "m2", Name: "Claire Moreau"},
			}, nil
		},
	}
	projectRepo := &mockProjectRepo{
		listFn: func(ctx context.Context, publishedOnly bool) ([]*model.Project, error) {
			return []*model.Project{
				{ID: "p1", Title: "Jardin partagé", ImageURL: strPtr("https://cdn.example.com/jardin.jpg")},
			}, nil
		},
	}
	newsRepo := &mockNewsRepo{
		listFn: func(ctx context.Context, publishedOnly bool) ([]*model.NewsItem, error) {
			return []*model.NewsItem{
				{ID: "n1", Title: "Soirée annuelle", ImageURL: strPtr("https://cdn.example.com/soiree.jpg")},
				{ID: "n2", Title: "Sans image"},
			}, nil
		},
	}

	prober := &mockProber{outcome: OutcomeOK}
	collector := &probeCollector{}
	s := NewScheduler(memberRepo, projectRepo, newsRepo, prober, collector, testLogger(), 2)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() がエラーを返した: %v", err)
	}

	if len(prober.probed) != 4 {
		t.Fatalf("検査件数 = %d, want 4", len(prober.probed))
	}

	var urls []string
	for _, tgt := range prober.probed {
		urls = append(urls, tgt.URL)
	}
	sort.Strings(urls)
	want := []string{
		"https://cdn.example.com/jardin.jpg",
		"https://cdn.example.com/jean.png",
		"https://cdn.example.com/soiree.jpg",
		"https://linkedin.com/in/jean",
	}
	for i, u := range want {
		if urls[i] != u {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], u)
		}
	}

	if len(collector.outcomes) != 4 {
		t.Errorf("メトリクス記録件数 = %d, want 4", len(collector.outcomes))
	}
}

func TestRunOnce_NoTargets(t *testing.T) {
	prober := &mockProber{outcome: OutcomeOK}
	s := NewScheduler(&mockMemberRepo{}, &mockProjectRepo{}, &mockNewsRepo{}, prober, &probeCollector{}, testLogger(), 2)

	if err := s.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() がエラーを返した: %v", err)
	}
	if len(prober.probed) != 0 {
		t.Errorf("検査件数 = %d, want 0", len(prober.probed))
	}
}

func TestRunOnce_RepositoryError(t *testing.T) {
	memberRepo := &mockMemberRepo{
		listFn: func(ctx context.Context, activeOnly bool) ([]*model.Member, error) {
			return nil, errors.New("db down")
		},
	}
	s := NewScheduler(memberRepo, &mockProjectRepo{}, &mockNewsRepo{}, &mockProber{}, &probeCollector{}, testLogger(), 2)

	if err := s.RunOnce(context.Background()); err == nil {
		t.Fatal("リポジトリエラー時はエラーを返すべき")
	}
}

func TestStart_StopsOnCancel(t *testing.T) {
	prober := &mockProber{outcome: OutcomeOK}
	s := NewScheduler(&mockMemberRepo{}, &mockProjectRepo{}, &mockNewsRepo{}, prober, &probeCollector{}, testLogger(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("キャンセル後にスケジューラが停止しなかった")
	}
}
