package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/model"
	"github.com/veloura/boutique-service/internal/social"
)

type mockRepository struct {
	posts map[string]*model.SocialPost
	order []string
}

func newMockRepository() *mockRepository {
	return &mockRepository{posts: map[string]*model.SocialPost{}}
}

func (m *mockRepository) Create(_ context.Context, p *model.SocialPost) error {
	m.posts[p.ID] = p
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id string) (*model.SocialPost, error) {
	return m.posts[id], nil
}

func (m *mockRepository) FindAll(_ context.Context, platform string) ([]model.SocialPost, error) {
	var out []model.SocialPost
	for _, id := range m.order {
		p := m.posts[id]
		if platform != "" && p.Platform != platform {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, p *model.SocialPost) error {
	m.posts[p.ID] = p
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id string) error {
	delete(m.posts, id)
	return nil
}

func post(platform, campaign string, impressions, clicks, orders int, revenue float64) *social.UpsertPostInput {
	return &social.UpsertPostInput{
		Platform:    platform,
		URL:         "https://social.example/p",
		UTMCampaign: campaign,
		Impressions: impressions,
		Clicks:      clicks,
		Orders:      orders,
		Revenue:     revenue,
		PostedAt:    time.Now(),
	}
}

func TestCampaignPerformance(t *testing.T) {
	repo := newMockRepository()
	uc := NewSocialUseCase(repo, zap.NewNop())

	for _, p := range []*social.UpsertPostInput{
		post("instagram", "automne-2026", 10000, 300, 12, 1800),
		post("tiktok", "automne-2026", 25000, 500, 8, 960),
		post("instagram", "soldes-ete", 4000, 120, 20, 2400),
	} {
		_, err := uc.CreatePost(context.Background(), p)
		require.NoError(t, err)
	}

	summaries, err := uc.CampaignPerformance(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Most revenue first.
	assert.Equal(t, "soldes-ete", summaries[0].UTMCampaign)
	assert.Equal(t, 2400.0, summaries[0].Revenue)

	automne := summaries[1]
	assert.Equal(t, "automne-2026", automne.UTMCampaign)
	assert.Equal(t, 2, automne.Posts)
	assert.Equal(t, 35000, automne.Impressions)
	assert.Equal(t, 800, automne.Clicks)
	assert.Equal(t, 20, automne.Orders)
	assert.Equal(t, 2760.0, automne.Revenue)
}

func TestUpdatePost(t *testing.T) {
	repo := newMockRepository()
	uc := NewSocialUseCase(repo, zap.NewNop())

	created, err := uc.CreatePost(context.Background(), post("instagram", "automne-2026", 100, 5, 0, 0))
	require.NoError(t, err)

	updated, err := uc.UpdatePost(context.Background(), created.ID,
		post("instagram", "automne-2026", 12000, 340, 15, 2250))
	require.NoError(t, err)
	assert.Equal(t, 12000, updated.Impressions)
	assert.Equal(t, 2250.0, updated.Revenue)

	t.Run("unknown post", func(t *testing.T) {
		_, err := uc.UpdatePost(context.Background(), "missing", post("instagram", "x", 0, 0, 0, 0))
		assert.ErrorIs(t, err, social.ErrPostNotFound)
	})
}
